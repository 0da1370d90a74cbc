package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTokenizer_UnsupportedType(t *testing.T) {
	_, err := newTokenizer(TokenizerConfig{Type: "wordpiece"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported tokenizer type: wordpiece")
}

func TestNewTokenizer_MissingHFFile(t *testing.T) {
	_, err := newTokenizer(TokenizerConfig{Type: "HuggingFace", File: t.TempDir() + "/missing.json"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestCounters_ZeroValue(t *testing.T) {
	assert.Equal(t, 0, (&tiktokenCounter{}).CountTokens("some text"))
	assert.Equal(t, 0, (&hfCounter{}).CountTokens("some text"))
}

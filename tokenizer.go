package main

import (
	"fmt"
	"io"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts tokens of file content for the report summary.
type Tokenizer interface {
	CountTokens(text string) int
}

// TokenizerConfig selects and locates a tokenizer.
type TokenizerConfig struct {
	Type  string // tiktoken or huggingface
	Model string
	File  string // local tokenizer.json, huggingface only
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

type tiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (c *tiktokenCounter) CountTokens(text string) int {
	if c.ttk == nil {
		return 0
	}
	return len(c.ttk.EncodeOrdinary(text))
}

type hfCounter struct {
	htk  *hf.Tokenizer
	warn io.Writer
}

func (c *hfCounter) CountTokens(text string) int {
	if c.htk == nil {
		return 0
	}
	en, err := c.htk.EncodeSingle(text)
	if err != nil {
		warnf(c.warn, "HF tokenizer failed to encode text: %v", err)
		return 0
	}
	return len(en.Tokens)
}

// newTokenizer builds the tokenizer described by cfg.
func newTokenizer(cfg TokenizerConfig, warn io.Writer) (Tokenizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "tiktoken":
		return loadTiktoken(cfg.Model, warn)
	case "huggingface":
		return loadHuggingFace(cfg, warn)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", cfg.Type)
	}
}

func loadTiktoken(model string, warn io.Writer) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		warnf(warn, "tiktoken model '%s' not found, falling back to '%s': %v", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &tiktokenCounter{ttk: tke}, nil
}

func loadHuggingFace(cfg TokenizerConfig, warn io.Writer) (Tokenizer, error) {
	path := cfg.File
	if path == "" {
		model := cfg.Model
		if model == "" {
			model = defaultHFModel
		}
		// CachedPath downloads tokenizer.json from the hub on first use.
		cached, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
		}
		path = cached
	}
	htk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from %s: %w", path, err)
	}
	return &hfCounter{htk: htk, warn: warn}, nil
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(nil))
	assert.Nil(t, splitList([]string{"", " "}))
	assert.Equal(t, []string{".rs", ".py", ".go"}, splitList([]string{".rs .py", ".go"}))
	assert.Equal(t, []string{"build", "dist"}, splitList([]string{"build,dist"}))
}

func TestExpandListFlags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "values after short flag",
			in:   []string{"proj", "-e", ".rs", ".py", "-o", "out.txt"},
			want: []string{"proj", "-e", ".rs", "-e", ".py", "-o", "out.txt"},
		},
		{
			name: "long flag at end",
			in:   []string{"proj", "--exclude", "build", "dist"},
			want: []string{"proj", "--exclude", "build", "--exclude", "dist"},
		},
		{
			name: "equals form untouched",
			in:   []string{"proj", "--extensions=.rs"},
			want: []string{"proj", "--extensions=.rs"},
		},
		{
			name: "missing value left for cobra",
			in:   []string{"proj", "-x"},
			want: []string{"proj", "-x"},
		},
		{
			name: "double dash stops rewriting",
			in:   []string{"-e", ".go", "--", "-e", "x"},
			want: []string{"-e", ".go", "--", "-e", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandListFlags(tt.in))
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	ro, err := ScanOptions{Root: "."}.resolve()
	require.NoError(t, err)
	assert.Equal(t, defaultOutputFile, ro.Output)
	assert.Equal(t, defaultExtensions, ro.extensions)
	assert.Len(t, ro.exclude, len(defaultExcludePatterns))
	assert.NotNil(t, ro.Now)
	assert.NotNil(t, ro.Warnings)
	assert.True(t, filepath.IsAbs(ro.outputAbs))
}

func TestResolve_OverridesReplaceDefaults(t *testing.T) {
	ro, err := ScanOptions{
		Root:            ".",
		Extensions:      []string{".rs"},
		ExcludePatterns: excludePatternsFromNames([]string{"build"}),
	}.resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{".rs"}, ro.extensions)
	require.Len(t, ro.exclude, 1)
	assert.False(t, shouldExclude(".git", ro.exclude))
	assert.True(t, shouldExclude("out/build", ro.exclude))
}

func TestResolve_RequiresRoot(t *testing.T) {
	_, err := ScanOptions{}.resolve()
	assert.Error(t, err)
}

func TestInitConfig_ReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projscan.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"ref.txt\"\nextensions = [\".rs\", \".sol\"]\n"), 0644))

	v := viper.New()
	var log bytes.Buffer
	require.NoError(t, initConfig(v, path, &log))
	assert.Equal(t, "ref.txt", v.GetString("output"))
	assert.Equal(t, []string{".rs", ".sol"}, v.GetStringSlice("extensions"))
	assert.Contains(t, log.String(), "Using config file: "+path)
}

func TestInitConfig_ExplicitMissingFileFails(t *testing.T) {
	err := initConfig(viper.New(), filepath.Join(t.TempDir(), "none.toml"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestInitConfig_NoConfigFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	testChdir(t, t.TempDir())
	assert.NoError(t, initConfig(viper.New(), "", &bytes.Buffer{}))
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

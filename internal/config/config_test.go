package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_Defaults(t *testing.T) {
	cfg, err := New().Defaults()
	require.NoError(t, err)

	assert.Equal(t, "commands.json", cfg.Grammar)
	assert.Equal(t, "registries.json", cfg.Registries)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:8457", cfg.Server.Addr)
	assert.Equal(t, "mcf> ", cfg.Repl.Prompt)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 0, cfg.Output.MaxItems)

	timeout, err := cfg.ReadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)

	assert.Empty(t, Check(cfg))
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "yaml",
			file:    ".mcfcomplete.yml",
			content: "grammar: data/commands.json\nlog_level: debug\noutput:\n  max_items: 5\n",
		},
		{
			name:    "toml",
			file:    ".mcfcomplete.toml",
			content: "grammar = \"data/commands.json\"\nlog_level = \"debug\"\n[output]\nmax_items = 5\n",
		},
		{
			name:    "json",
			file:    ".mcfcomplete.json",
			content: `{"grammar":"data/commands.json","log_level":"debug","output":{"max_items":5}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			cfg, err := New().Load(path)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "data", "commands.json"), cfg.Grammar)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, 5, cfg.Output.MaxItems)
			// untouched keys keep their defaults
			assert.Equal(t, "registries.json", cfg.Registries)
			assert.Equal(t, "text", cfg.Output.Format)
		})
	}
}

func TestLoader_Load_AbsoluteAndTemplatedPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mcfcomplete.yml")
	writeFile(t, path, "grammar: /opt/mc/commands.json\nregistries: \"{{.CONFIG_DIR}}/gen/{{ \\\"registries.json\\\" | lower }}\"\n")

	cfg, err := New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/mc/commands.json", cfg.Grammar)
	assert.Equal(t, filepath.Join(dir, "gen", "registries.json"), cfg.Registries)
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".mcfcomplete.yml")
		_, err := New().Load(path)

		var cfgErr *derrors.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, path, cfgErr.Path)
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.ini")
		writeFile(t, path, "x=1")
		_, err := New().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config format")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".mcfcomplete.yml")
		writeFile(t, path, "grammar: [unclosed\n")
		_, err := New().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})
}

func TestLoader_Cache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mcfcomplete.yml")
	writeFile(t, path, "log_level: info\n")

	loader := New()
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	writeFile(t, path, "log_level: error\n")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	cfg, err = loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "modified file must be reparsed")
}

func TestFindConfigFiles(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0755))

	writeFile(t, filepath.Join(root, ".mcfcomplete.yml"), "log_level: info\n")
	writeFile(t, filepath.Join(root, "a", "b", ".mcfcomplete.json"), `{"log_level":"debug"}`)
	// only the preferred name is picked in a directory
	writeFile(t, filepath.Join(root, "a", "b", ".mcfcomplete.toml"), `log_level = "error"`)

	files, err := FindConfigFiles(child)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(files), 2)

	tail := files[len(files)-2:]
	assert.Equal(t, filepath.Join(root, ".mcfcomplete.yml"), tail[0])
	assert.Equal(t, filepath.Join(child, ".mcfcomplete.toml"), tail[1])
}

func TestLoader_LoadHierarchy(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	child := filepath.Join(root, "project")
	writeFile(t, filepath.Join(root, ".mcfcomplete.yml"), "log_level: info\ngrammar: shared/commands.json\n")
	writeFile(t, filepath.Join(child, ".mcfcomplete.yml"), "log_level: debug\nserver:\n  addr: \":9000\"\n")

	cfg, files, err := New().LoadHierarchy(child)
	require.NoError(t, err)

	assert.Contains(t, files, filepath.Join(root, ".mcfcomplete.yml"))
	assert.Contains(t, files, filepath.Join(child, ".mcfcomplete.yml"))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, filepath.Join(root, "shared", "commands.json"), cfg.Grammar)
	assert.Equal(t, "5s", cfg.Server.ReadTimeout)
}

func TestLoader_LoadHierarchy_WithGlobal(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	globalPath := filepath.Join(configHome, "mcfcomplete", GlobalConfigName)
	writeFile(t, globalPath, "repl:\n  prompt: \"> \"\nlog_level: error\n")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mcfcomplete.yml"), "log_level: info\n")

	cfg, files, err := New().LoadHierarchy(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, globalPath, files[0])
	assert.Equal(t, "> ", cfg.Repl.Prompt)
	assert.Equal(t, "info", cfg.LogLevel, "local config overrides global")
}

func TestLoader_LoadHierarchy_NoConfigs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, _, err := New().LoadHierarchy(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGetGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := GetGlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/mcfcomplete/config.yml", path)
}

func TestExpandTemplate(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"plain", "commands.json", "commands.json"},
		{"config dir", "{{.CONFIG_DIR}}/commands.json", "/srv/mc/commands.json"},
		{"working dir", "{{.USER_WORKING_DIR}}", cwd},
		{"sprig functions", "{{.CONFIG_DIR | base | upper}}", "MC"},
		{"invalid template kept", "{{.CONFIG_DIR", "{{.CONFIG_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandTemplate(tt.value, "/srv/mc"))
		})
	}
}

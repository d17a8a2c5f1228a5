package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testGrammar = `{
  "type": "root",
  "children": {
    "gamemode": {
      "type": "literal",
      "children": {
        "survival": {"type": "literal", "executable": true},
        "creative": {"type": "literal", "executable": true}
      }
    },
    "give": {
      "type": "literal",
      "children": {
        "targets": {
          "type": "argument",
          "parser": "minecraft:entity",
          "children": {"item": {"type": "argument", "parser": "minecraft:item_stack", "executable": true}}
        }
      }
    },
    "tp": {"type": "literal", "redirect": ["give"]}
  }
}`

const testRegistries = `{"item": ["minecraft:stone", "minecraft:stick", "minecraft:apple"]}`

// setupProject writes a grammar, registries and a config pointing at them
// with relative paths, and returns options using that config.
func setupProject(t *testing.T, extraConfig string) (Options, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.json"), []byte(testGrammar), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registries.json"), []byte(testRegistries), 0644))

	configPath := filepath.Join(dir, ".mcfcomplete.yml")
	content := "grammar: commands.json\nregistries: registries.json\nlog_level: error\n" + extraConfig
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	out := &bytes.Buffer{}
	return Options{ConfigPath: configPath, Out: out}, out
}

func keepConfig() OutputParams {
	return OutputParams{MaxItems: -1}
}

func TestComplete_Text(t *testing.T) {
	opts, out := setupProject(t, "")

	err := Complete(context.Background(), CompleteParams{Options: opts, Output: keepConfig(), Line: "gamemode "})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "survival")
	assert.Contains(t, out.String(), "creative")
}

func TestComplete_JSON(t *testing.T) {
	opts, out := setupProject(t, "")

	err := Complete(context.Background(), CompleteParams{
		Options: opts,
		Output:  OutputParams{Format: FormatJSON, MaxItems: -1},
		Line:    "give @p sti",
	})
	require.NoError(t, err)

	var got []candidateView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "minecraft:stick", got[0].Label)
	assert.Equal(t, "enum-value", got[0].Kind)
	assert.Equal(t, []string{" "}, got[0].CommitCharacters)
	require.NotNil(t, got[0].Range)
	assert.Equal(t, 8, got[0].Range.Start.Character)
	assert.Equal(t, 11, got[0].Range.End.Character)
}

func TestComplete_YAML(t *testing.T) {
	opts, out := setupProject(t, "")

	err := Complete(context.Background(), CompleteParams{
		Options: opts,
		Output:  OutputParams{Format: FormatYAML, MaxItems: 2},
		Line:    "give @p ",
	})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "minecraft:stone", got[0]["label"])
	assert.Equal(t, "minecraft:stick", got[1]["label"])
}

func TestComplete_Template(t *testing.T) {
	t.Run("from flag", func(t *testing.T) {
		opts, out := setupProject(t, "")
		err := Complete(context.Background(), CompleteParams{
			Options: opts,
			Output:  OutputParams{Format: FormatTemplate, MaxItems: -1, Template: "{{ .Label | upper }}:{{ .Kind }}"},
			Line:    "gamemode ",
		})
		require.NoError(t, err)
		assert.Equal(t, "SURVIVAL:keyword\nCREATIVE:keyword\n", out.String())
	})

	t.Run("from config", func(t *testing.T) {
		opts, out := setupProject(t, "output:\n  format: template\n  max_items: 1\n  template: \"{{ .Label }}\"\n")
		err := Complete(context.Background(), CompleteParams{Options: opts, Output: keepConfig(), Line: "gamemode "})
		require.NoError(t, err)
		assert.Equal(t, "survival\n", out.String())
	})

	t.Run("missing template", func(t *testing.T) {
		opts, _ := setupProject(t, "")
		err := Complete(context.Background(), CompleteParams{
			Options: opts,
			Output:  OutputParams{Format: FormatTemplate, MaxItems: -1},
			Line:    "gamemode ",
		})
		assert.Error(t, err)
	})
}

func TestComplete_UnknownFormat(t *testing.T) {
	opts, _ := setupProject(t, "")
	err := Complete(context.Background(), CompleteParams{
		Options: opts,
		Output:  OutputParams{Format: "xml", MaxItems: -1},
		Line:    "",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestComplete_GrammarOverride(t *testing.T) {
	opts, out := setupProject(t, "")

	other := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(other, []byte(`{"type":"root","children":{"say":{"type":"literal"}}}`), 0644))
	opts.Grammar = other

	err := Complete(context.Background(), CompleteParams{
		Options: opts,
		Output:  OutputParams{Format: FormatJSON, MaxItems: -1},
		Line:    "",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"say"`)
	assert.NotContains(t, out.String(), "gamemode")
}

func TestComplete_MissingRegistries(t *testing.T) {
	opts, out := setupProject(t, "")
	opts.Registries = filepath.Join(t.TempDir(), "missing.json")

	err := Complete(context.Background(), CompleteParams{
		Options: opts,
		Output:  OutputParams{Format: FormatJSON, MaxItems: -1},
		Line:    "give @p ",
	})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out.String())
}

func TestComplete_MissingGrammar(t *testing.T) {
	opts, _ := setupProject(t, "")
	opts.Grammar = filepath.Join(t.TempDir(), "missing.json")

	err := Complete(context.Background(), CompleteParams{Options: opts, Output: keepConfig(), Line: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grammar file not found")
}

func TestParse(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		opts, out := setupProject(t, "")
		require.NoError(t, Parse(context.Background(), ParseParams{Options: opts, Line: "tp @a st"}))
		assert.Contains(t, out.String(), "give targets")
		assert.Contains(t, out.String(), "targets = @a")
	})

	t.Run("json", func(t *testing.T) {
		opts, out := setupProject(t, "")
		require.NoError(t, Parse(context.Background(), ParseParams{Options: opts, Format: FormatJSON, Line: "tp @a st"}))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, []any{"give", "targets"}, got["tip"])
		assert.Equal(t, "st", got["remainder"])
		assert.EqualValues(t, 6, got["consumed"])
	})
}

func TestEmbedded(t *testing.T) {
	opts, out := setupProject(t, "")

	source := "export const load = mc`\n  gamemode c\n`;\n"
	file := filepath.Join(t.TempDir(), "load.ts")
	require.NoError(t, os.WriteFile(file, []byte(source), 0644))
	offset := strings.Index(source, "gamemode c") + len("gamemode c")

	err := Embedded(context.Background(), EmbeddedParams{
		Options: opts,
		Output:  OutputParams{Format: FormatJSON, MaxItems: -1},
		File:    file,
		Offset:  offset,
	})
	require.NoError(t, err)

	var got []candidateView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "creative", got[0].Label)
	require.NotNil(t, got[0].Range)
	assert.Equal(t, 1, got[0].Range.Start.Line)
	assert.Equal(t, 11, got[0].Range.Start.Character)
	assert.Equal(t, 12, got[0].Range.End.Character)

	t.Run("offset out of range", func(t *testing.T) {
		err := Embedded(context.Background(), EmbeddedParams{Options: opts, Output: keepConfig(), File: file, Offset: 1000})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside")
	})

	t.Run("missing file", func(t *testing.T) {
		err := Embedded(context.Background(), EmbeddedParams{Options: opts, Output: keepConfig(), File: "/nonexistent/load.ts"})
		assert.Error(t, err)
	})
}

func TestValidate_Grammar(t *testing.T) {
	t.Run("configured grammar", func(t *testing.T) {
		opts, out := setupProject(t, "")
		require.NoError(t, Validate(ValidateParams{Options: opts}))
		assert.Contains(t, out.String(), "Grammar is valid")
	})

	t.Run("schema violation", func(t *testing.T) {
		opts, out := setupProject(t, "")
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"branch"}`), 0644))

		err := Validate(ValidateParams{Options: opts, Path: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, out.String(), "does not match the schema")
	})

	t.Run("redirect cycle", func(t *testing.T) {
		opts, out := setupProject(t, "")
		path := filepath.Join(t.TempDir(), "cycle.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"root","children":{"a":{"type":"literal","redirect":["a"]}}}`), 0644))

		err := Validate(ValidateParams{Options: opts, Path: path})
		require.Error(t, err)
		assert.Contains(t, out.String(), "redirect cycle")
	})

	t.Run("missing file", func(t *testing.T) {
		opts, _ := setupProject(t, "")
		err := Validate(ValidateParams{Options: opts, Path: "/nonexistent/commands.json"})
		assert.Error(t, err)
	})
}

func TestValidate_Config(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		opts, out := setupProject(t, "")
		require.NoError(t, Validate(ValidateParams{Options: opts, Path: opts.ConfigPath, Config: true}))
		assert.Contains(t, out.String(), "Configuration is valid")
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".mcfcomplete.yml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

		out := &bytes.Buffer{}
		err := Validate(ValidateParams{Options: Options{Out: out}, Path: path, Config: true})
		require.Error(t, err)
		assert.Contains(t, out.String(), "log_level")
	})

	t.Run("auto detect", func(t *testing.T) {
		opts, out := setupProject(t, "")
		t.Chdir(filepath.Dir(opts.ConfigPath))

		require.NoError(t, Validate(ValidateParams{Options: Options{Out: out}, Config: true}))
		assert.Contains(t, out.String(), ".mcfcomplete.yml")
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		err := Validate(ValidateParams{Options: Options{Out: &bytes.Buffer{}}, Config: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config file found")
	})
}

func TestSchema(t *testing.T) {
	t.Run("grammar to stdout", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, Schema(SchemaParams{Options: Options{Out: out}}))
		assert.Contains(t, out.String(), `"title": "Brigadier command tree"`)
	})

	t.Run("config to file", func(t *testing.T) {
		outputFile := filepath.Join(t.TempDir(), "schema.json")
		out := &bytes.Buffer{}
		require.NoError(t, Schema(SchemaParams{Options: Options{Out: out}, Kind: SchemaConfig, OutputPath: outputFile}))

		content, err := os.ReadFile(outputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"$schema": "http://json-schema.org/draft-07/schema#"`)
		assert.Contains(t, string(content), `"log_level"`)
		assert.Contains(t, out.String(), "JSON Schema written to")
	})

	t.Run("unknown kind", func(t *testing.T) {
		assert.Error(t, Schema(SchemaParams{Kind: "registry"}))
	})

	t.Run("invalid path", func(t *testing.T) {
		err := Schema(SchemaParams{Options: Options{Out: &bytes.Buffer{}}, OutputPath: "/nonexistent/directory/schema.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write schema")
	})
}

func TestTree(t *testing.T) {
	opts, out := setupProject(t, "")
	require.NoError(t, Tree(context.Background(), TreeParams{Options: opts, Depth: 1, Check: true}))

	assert.Contains(t, out.String(), "gamemode")
	assert.Contains(t, out.String(), "tp → give")
	assert.NotContains(t, out.String(), "survival")
	assert.Contains(t, out.String(), "Grammar is valid")
}

func TestStatus(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		opts, out := setupProject(t, "")
		require.NoError(t, Status(StatusParams{Options: opts}))
		assert.Contains(t, out.String(), opts.ConfigPath)
		assert.Contains(t, out.String(), "commands.json")
		assert.Contains(t, out.String(), "item")
	})

	t.Run("broken grammar is reported", func(t *testing.T) {
		opts, out := setupProject(t, "")
		opts.Grammar = filepath.Join(t.TempDir(), "missing.json")
		require.NoError(t, Status(StatusParams{Options: opts}))
		assert.Contains(t, out.String(), "grammar file not found")
	})
}

func TestLoadSettings_Overrides(t *testing.T) {
	opts, _ := setupProject(t, "")
	opts.LogLevel = "debug"
	opts.LogFormat = "json"

	s, err := loadSettings(opts)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.cfg.LogLevel)
	assert.Equal(t, "json", s.cfg.LogFormat)
	assert.Equal(t, filepath.Join(filepath.Dir(opts.ConfigPath), "commands.json"), s.cfg.Grammar)
	assert.Equal(t, []string{opts.ConfigPath}, s.files)
}

func TestServe_InvalidTimeout(t *testing.T) {
	opts, _ := setupProject(t, "server:\n  read_timeout: soon\n")
	err := Serve(context.Background(), ServeParams{Options: opts})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read_timeout")
}

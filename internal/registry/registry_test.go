package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
)

func TestNew(t *testing.T) {
	src := map[string][]string{
		"minecraft:item": {"minecraft:stone", "minecraft:stick"},
		"block":          {},
	}
	regs := New(src)

	assert.Equal(t, []string{"minecraft:stone", "minecraft:stick"}, regs.Get(Item))
	assert.Equal(t, []string{"minecraft:stone", "minecraft:stick"}, regs.Get("minecraft:item"))
	assert.Empty(t, regs.Get(Block))
	assert.Equal(t, 2, regs.Len(Item))
	assert.Equal(t, []string{"block", "item"}, regs.Names())

	t.Run("input is copied", func(t *testing.T) {
		src["minecraft:item"][0] = "changed"
		assert.Equal(t, "minecraft:stone", regs.Get(Item)[0])
	})

	t.Run("output is copied", func(t *testing.T) {
		items := regs.Get(Item)
		items[0] = "changed"
		assert.Equal(t, "minecraft:stone", regs.Get(Item)[0])
	})
}

func TestRegistries_ZeroValue(t *testing.T) {
	var regs Registries
	assert.Empty(t, regs.Get(Item))
	assert.Equal(t, 0, regs.Len(Block))
	assert.Empty(t, regs.Names())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{
			name: "json",
			ext:  ".json",
			data: `{"item":["minecraft:stone","minecraft:stick"],"block":["minecraft:dirt"]}`,
		},
		{
			name: "yaml",
			ext:  ".yml",
			data: "item:\n  - minecraft:stone\n  - minecraft:stick\nblock:\n  - minecraft:dirt\n",
		},
		{
			name: "toml",
			ext:  ".toml",
			data: "item = [\"minecraft:stone\", \"minecraft:stick\"]\nblock = [\"minecraft:dirt\"]\n",
		},
		{
			name: "no extension defaults to json",
			ext:  "",
			data: `{"item":["minecraft:stone","minecraft:stick"],"block":["minecraft:dirt"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs, err := Parse([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, []string{"minecraft:stone", "minecraft:stick"}, regs.Get(Item))
			assert.Equal(t, []string{"minecraft:dirt"}, regs.Get(Block))
		})
	}
}

func TestParse_GeneratorFormat(t *testing.T) {
	data := `{
	  "minecraft:item": {
	    "default": "minecraft:air",
	    "protocol_id": 7,
	    "entries": {
	      "minecraft:stone": {"protocol_id": 1},
	      "minecraft:air": {"protocol_id": 0},
	      "minecraft:granite": {"protocol_id": 2}
	    }
	  }
	}`

	regs, err := Parse([]byte(data), ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:air", "minecraft:stone", "minecraft:granite"}, regs.Get(Item))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		ext     string
		message string
	}{
		{"unsupported format", `item = 1`, ".ini", "unsupported registries format"},
		{"invalid json", `{"item":`, ".json", ""},
		{"non-string entry", `{"item":["minecraft:stone", 3]}`, ".json", "expected string"},
		{"scalar registry", `{"item":"minecraft:stone"}`, ".json", "expected a list"},
		{"object without entries", `{"item":{"default":"minecraft:air"}}`, ".json", "object with entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			require.Error(t, err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("reads file by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registries.yaml")
		require.NoError(t, os.WriteFile(path, []byte("item:\n  - minecraft:stick\n"), 0644))

		regs, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"minecraft:stick"}, regs.Get(Item))
		assert.Empty(t, regs.Get(Block))
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registries.json")
		_, err := Load(path)

		var loadErr *derrors.LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, path, loadErr.Path)
		assert.Contains(t, err.Error(), "registries file not found")
	})

	t.Run("bad content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registries.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"item": 5}`), 0644))

		_, err := Load(path)
		var loadErr *derrors.LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Contains(t, err.Error(), "failed to parse registries")
	})
}

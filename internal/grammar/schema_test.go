package grammar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON(t *testing.T) {
	raw := GetSchemaJSON()
	require.NotEmpty(t, raw)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", decoded["$schema"])
	assert.Contains(t, raw, `"literal"`)
	assert.Contains(t, raw, `"argument"`)

	// cached
	assert.Equal(t, raw, GetSchemaJSON())
}

func TestValidateJSON(t *testing.T) {
	t.Run("valid grammar", func(t *testing.T) {
		result, err := ValidateJSON([]byte(aliasGrammar))
		require.NoError(t, err)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
		assert.Empty(t, result.Errors)
	})

	t.Run("unknown node type", func(t *testing.T) {
		result, err := ValidateJSON([]byte(`{"type":"root","children":{"say":{"type":"command"}}}`))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("missing type", func(t *testing.T) {
		result, err := ValidateJSON([]byte(`{"type":"root","children":{"say":{"executable":true}}}`))
		require.NoError(t, err)
		assert.False(t, result.Valid)
	})

	t.Run("redirect must be a list", func(t *testing.T) {
		result, err := ValidateJSON([]byte(`{"type":"root","children":{"tp":{"type":"literal","redirect":"teleport"}}}`))
		require.NoError(t, err)
		assert.False(t, result.Valid)
	})

	t.Run("syntax error", func(t *testing.T) {
		result, err := ValidateJSON([]byte(`{"type":`))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "syntax", result.Errors[0].Field)
	})
}

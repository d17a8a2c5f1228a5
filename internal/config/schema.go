package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

var (
	schemaOnce sync.Once
	schemaJSON string
)

// GetSchemaJSON returns the JSON Schema for mcfcomplete configuration
func GetSchemaJSON() string {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			Anonymous:                 true,
			DoNotReference:            true,
			AllowAdditionalProperties: false,
		}
		s := r.Reflect(&Config{})
		s.Version = "http://json-schema.org/draft-07/schema#"
		s.Title = "mcfcomplete configuration"
		s.Description = "Configuration of the mcfcomplete command completion tool"

		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			panic(fmt.Sprintf("config schema: %v", err))
		}
		schemaJSON = string(data)
	})
	return schemaJSON
}

// ValidateWithSchema validates config file content against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	var syntaxErr error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		syntaxErr = yaml.Unmarshal(content, &data)
	case ".json":
		syntaxErr = json.Unmarshal(content, &data)
	case ".toml":
		data, syntaxErr = toml.Parser().Unmarshal(content)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
	if syntaxErr != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Invalid %s syntax: %v", strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")), syntaxErr),
		})
		return result, nil
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, err := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   err.Field(),
				Message: err.Description(),
			})
		}
	}

	return result, nil
}

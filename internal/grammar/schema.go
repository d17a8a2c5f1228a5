package grammar

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// schemaNode mirrors Document with plain maps so the reflector can
// describe it; ordering is irrelevant to validation.
type schemaNode struct {
	Type       string                 `json:"type" jsonschema:"enum=root,enum=literal,enum=argument,description=Node kind"`
	Children   map[string]*schemaNode `json:"children,omitempty" jsonschema:"description=Child nodes keyed by literal text or argument name"`
	Executable bool                   `json:"executable,omitempty" jsonschema:"description=True when a command may end at this node,default=false"`
	Redirect   []string               `json:"redirect,omitempty" jsonschema:"description=Path from the root whose children replace this node's children (empty list means the root)"`
	Parser     string                 `json:"parser,omitempty" jsonschema:"description=Argument parser identifier such as minecraft:block_pos"`
	Properties map[string]interface{} `json:"properties,omitempty" jsonschema:"description=Parser options (not used for completion)"`
}

// ValidationError is a single schema violation
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of schema validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

var (
	schemaOnce sync.Once
	schemaJSON string
)

// Schema returns the JSON Schema describing grammar documents
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&schemaNode{})
	s.Version = "http://json-schema.org/draft-07/schema#"
	s.Title = "Brigadier command tree"
	s.Description = "Command dispatch tree consumed by mcfcomplete"
	return s
}

// GetSchemaJSON returns the indented JSON form of Schema
func GetSchemaJSON() string {
	schemaOnce.Do(func() {
		data, err := json.MarshalIndent(Schema(), "", "  ")
		if err != nil {
			panic(fmt.Sprintf("grammar schema does not marshal: %v", err))
		}
		schemaJSON = string(data)
	})
	return schemaJSON
}

// ValidateJSON checks raw grammar JSON against the schema. Syntax errors
// are reported as a failed result, not as an error.
func ValidateJSON(content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Invalid JSON syntax: %v", err),
		})
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, desc := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
	}

	return result, nil
}

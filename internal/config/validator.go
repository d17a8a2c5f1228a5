package config

import (
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sirupsen/logrus"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate validates a config file: its shape against the schema, then the
// values the schema cannot express.
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.add("syntax", "Failed to parse config: %v", err)
		return result, nil
	}

	for _, check := range Check(cfg) {
		result.add(check.Field, "%s", check.Message)
	}
	return result, nil
}

// Check validates the values of a loaded config
func Check(cfg *Config) []ValidationError {
	result := &ValidationResult{Valid: true}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		result.add("log_level", "Unknown log level %q", cfg.LogLevel)
	}
	if _, err := cfg.ReadTimeout(); err != nil {
		result.add("server.read_timeout", "Invalid duration %q", cfg.Server.ReadTimeout)
	}
	if cfg.Server.Addr == "" {
		result.add("server.addr", "Listen address is empty")
	}
	if cfg.Output.MaxItems < 0 {
		result.add("output.max_items", "Must not be negative")
	}
	if cfg.Output.Format == "template" && cfg.Output.Template == "" {
		result.add("output.template", "Template format needs a template")
	}
	if cfg.Output.Template != "" {
		if _, err := template.New("candidate").Funcs(sprig.TxtFuncMap()).Parse(cfg.Output.Template); err != nil {
			result.add("output.template", "Invalid template: %v", err)
		}
	}
	return result.Errors
}

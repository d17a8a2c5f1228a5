package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// expandTemplate renders sprig templates in path values.
// Available variables: CONFIG_DIR (directory of the config file) and
// USER_WORKING_DIR. An invalid template leaves the value unchanged.
func expandTemplate(value, configDir string) string {
	if !strings.Contains(value, "{{") {
		return value
	}

	tmpl, err := template.New("value").Funcs(sprig.TxtFuncMap()).Parse(value)
	if err != nil {
		return value
	}

	cwd, _ := os.Getwd()
	data := map[string]string{
		"CONFIG_DIR":       configDir,
		"USER_WORKING_DIR": cwd,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return value
	}
	return buf.String()
}

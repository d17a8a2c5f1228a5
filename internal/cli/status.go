package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/registry"
	"github.com/NikitaCOEUR/mcfcomplete/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	Options
}

// Status displays the configuration, grammar and registries in use.
// Load failures are shown rather than returned.
func Status(params StatusParams) error {
	s, err := loadSettings(params.Options)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	src := status.Sources{
		ConfigFiles:    s.files,
		GrammarPath:    s.cfg.Grammar,
		RegistriesPath: s.cfg.Registries,
	}
	src.Tree, src.GrammarErr = grammar.Load(s.cfg.Grammar)
	if s.cfg.Registries != "" {
		src.Registries, src.RegistriesErr = registry.Load(s.cfg.Registries)
	}

	fmt.Fprintln(params.stdout(), status.Render(status.Collect(src)))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/view"
)

// TreeParams contains parameters for the Tree command
type TreeParams struct {
	Options
	Depth int
	Check bool
}

// Tree prints the grammar outline, optionally followed by its check report
func Tree(_ context.Context, params TreeParams) error {
	s, err := loadSettings(params.Options)
	if err != nil {
		return err
	}

	tree, err := grammar.Load(s.cfg.Grammar)
	if err != nil {
		return err
	}

	w := params.stdout()
	fmt.Fprintln(w, view.RenderTree(tree, params.Depth))
	if params.Check {
		fmt.Fprintln(w)
		fmt.Fprintln(w, view.RenderIssues(tree.Check()))
	}
	return nil
}

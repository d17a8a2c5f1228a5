package engine

import (
	"strings"

	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/registry"
)

// Strategy expands an argument node into its candidates
type Strategy func(node *grammar.Node, regs registry.Registries) []Candidate

// Selector arguments are always offered in full: the grammar does not say
// which entity types or counts an argument accepts.
var selectors = []Candidate{
	{Label: "@p", Kind: KindEnumValue, Documentation: "the nearest player"},
	{Label: "@r", Kind: KindEnumValue, Documentation: "a random player"},
	{Label: "@a", Kind: KindEnumValue, Documentation: "all players"},
	{Label: "@e", Kind: KindEnumValue, Documentation: "all entities"},
	{Label: "@s", Kind: KindEnumValue, Documentation: "the entity executing the command"},
	{Label: "@n", Kind: KindEnumValue, Documentation: "the nearest entity"},
}

var strategies = map[grammar.Parser]Strategy{
	grammar.ParserEntity:         entityStrategy,
	grammar.ParserBlockPos:       relativeStrategy(true),
	grammar.ParserVec3:           relativeStrategy(true),
	grammar.ParserVec2:           relativeStrategy(false),
	grammar.ParserColumnPos:      relativeStrategy(false),
	grammar.ParserRotation:       relativeStrategy(false),
	grammar.ParserItemStack:      registryStrategy(registry.Item),
	grammar.ParserItemPredicate:  registryStrategy(registry.Item),
	grammar.ParserBlockState:     registryStrategy(registry.Block),
	grammar.ParserBlockPredicate: registryStrategy(registry.Block),
}

// StrategyFor returns the strategy of a parser, nil when the parser offers
// nothing.
func StrategyFor(p grammar.Parser) Strategy {
	return strategies[p]
}

func entityStrategy(_ *grammar.Node, _ registry.Registries) []Candidate {
	return append([]Candidate(nil), selectors...)
}

// relativeStrategy offers the all-relative form of a coordinate argument,
// one ~ per consumed token. Positions also get the local ^ form.
func relativeStrategy(local bool) Strategy {
	return func(node *grammar.Node, _ registry.Registries) []Candidate {
		width := node.Parser().Width()
		candidates := []Candidate{{
			Label:         repeatToken("~", width),
			Kind:          KindLiteralValue,
			Documentation: "relative to the current position",
		}}
		if node.Parser() == grammar.ParserRotation {
			candidates[0].Documentation = "relative to the current rotation"
		}
		if local {
			candidates = append(candidates, Candidate{
				Label:         repeatToken("^", width),
				Kind:          KindLiteralValue,
				Documentation: "local coordinates (left, up, forward)",
			})
		}
		return candidates
	}
}

func registryStrategy(name string) Strategy {
	return func(_ *grammar.Node, regs registry.Registries) []Candidate {
		ids := regs.Get(name)
		candidates := make([]Candidate, 0, len(ids))
		for _, id := range ids {
			candidates = append(candidates, Candidate{Label: id, Kind: KindEnumValue})
		}
		return candidates
	}
}

func repeatToken(token string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = token
	}
	return strings.Join(parts, " ")
}

package grammar

import "strings"

// Parser identifies the declared type of an argument node. It decides how
// many whitespace-delimited tokens the argument consumes and how it is
// expanded into completion candidates.
type Parser int

// Known argument parsers
const (
	ParserUnknown Parser = iota
	ParserEntity
	ParserBlockPos
	ParserVec3
	ParserVec2
	ParserColumnPos
	ParserRotation
	ParserItemStack
	ParserItemPredicate
	ParserBlockState
	ParserBlockPredicate
)

// DefaultNamespace is stripped from parser and registry identifiers
const DefaultNamespace = "minecraft:"

var parserIDs = map[string]Parser{
	"entity":          ParserEntity,
	"block_pos":       ParserBlockPos,
	"vec3":            ParserVec3,
	"vec2":            ParserVec2,
	"column_pos":      ParserColumnPos,
	"rotation":        ParserRotation,
	"item_stack":      ParserItemStack,
	"item_predicate":  ParserItemPredicate,
	"block_state":     ParserBlockState,
	"block_predicate": ParserBlockPredicate,
}

// tokenWidths lists every parser that consumes more than one token.
// Anything missing here consumes exactly one.
var tokenWidths = map[Parser]int{
	ParserBlockPos:  3,
	ParserVec3:      3,
	ParserVec2:      2,
	ParserColumnPos: 2,
	ParserRotation:  2,
}

// ParseParser maps a parser identifier such as "block_pos" or
// "minecraft:block_pos" to its Parser. Unrecognized identifiers map to
// ParserUnknown.
func ParseParser(id string) Parser {
	p, ok := parserIDs[strings.TrimPrefix(id, DefaultNamespace)]
	if !ok {
		return ParserUnknown
	}
	return p
}

// String returns the bare identifier of the parser
func (p Parser) String() string {
	for id, candidate := range parserIDs {
		if candidate == p {
			return id
		}
	}
	return "unknown"
}

// Width returns the number of whitespace-delimited tokens the parser consumes
func (p Parser) Width() int {
	if w, ok := tokenWidths[p]; ok {
		return w
	}
	return 1
}

// TokenWidths returns a copy of the multi-token width table
func TokenWidths() map[Parser]int {
	widths := make(map[Parser]int, len(tokenWidths))
	for p, w := range tokenWidths {
		widths[p] = w
	}
	return widths
}

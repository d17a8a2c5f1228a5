package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
)

// RenderCandidates renders the completions of a line. max limits the
// number of rows, 0 means no limit.
func RenderCandidates(line string, candidates []engine.Candidate, max int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("🔍 Completions for: ") + ValueStyle.Render(fmt.Sprintf("%q", line)) + "\n")

	if len(candidates) == 0 {
		b.WriteString("   " + SubtleStyle.Render("No completions"))
		return b.String()
	}

	shown := candidates
	if max > 0 && len(shown) > max {
		shown = shown[:max]
	}

	width := 0
	for _, c := range shown {
		width = maxInt(width, lipgloss.Width(c.Label))
	}

	for _, c := range shown {
		label := kindStyle(c.Kind).Render(c.Label)
		pad := strings.Repeat(" ", width-lipgloss.Width(c.Label))
		row := "   " + label + pad + "  " + KeyStyle.Render(c.Kind.String())
		if c.Documentation != "" {
			row += "  " + SubtleStyle.Render(c.Documentation)
		}
		b.WriteString(row + "\n")
	}

	if hidden := len(candidates) - len(shown); hidden > 0 {
		b.WriteString("   " + SubtleStyle.Render(fmt.Sprintf("... and %d more", hidden)) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderParse renders where a line ends up in the grammar
func RenderParse(line string, result *engine.ParseResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("🧭 Parse of: ") + ValueStyle.Render(fmt.Sprintf("%q", line)) + "\n")
	b.WriteString("   " + KeyStyle.Render("Tip: ") + ValueStyle.Render(result.Tip.PathString()) +
		SubtleStyle.Render(" ("+result.Tip.Kind().String()+")") + "\n")
	b.WriteString("   " + KeyStyle.Render("Consumed: ") + ValueStyle.Render(fmt.Sprintf("%d", result.Consumed)) + "\n")
	b.WriteString("   " + KeyStyle.Render("Remainder: ") + ValueStyle.Render(fmt.Sprintf("%q", result.Remainder)))

	if len(result.Properties) > 0 {
		b.WriteString("\n" + SectionStyle.Render("📌 Arguments:"))
		names := make([]string, 0, len(result.Properties))
		for name := range result.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString("\n   " + KeyStyle.Render(name+" = ") + ValueStyle.Render(result.Properties[name]))
		}
	}

	return b.String()
}

// RenderIssues renders the outcome of a grammar check
func RenderIssues(issues []grammar.Issue) string {
	if len(issues) == 0 {
		return SuccessStyle.Render("✅ Grammar is valid!")
	}

	var b strings.Builder
	if grammar.HasErrors(issues) {
		b.WriteString(ErrorStyle.Render("❌ Grammar has errors:") + "\n")
	} else {
		b.WriteString(WarningStyle.Render("⚠️  Grammar has warnings:") + "\n")
	}

	for _, issue := range issues {
		marker := WarningStyle.Render("warning")
		if issue.Severity == grammar.SeverityError {
			marker = ErrorStyle.Render("error")
		}
		b.WriteString(fmt.Sprintf("   %s %s: %s\n", marker, KeyStyle.Render(issue.Path), issue.Message))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderTree renders the grammar as an indented outline. depth limits how
// many levels below the root are shown, 0 means no limit.
func RenderTree(tree *grammar.Tree, depth int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("🌳 Grammar") + SubtleStyle.Render(fmt.Sprintf(" (%d nodes)", tree.Size())))
	renderChildren(&b, tree.Root(), 1, depth)
	return b.String()
}

func renderChildren(b *strings.Builder, n *grammar.Node, level, depth int) {
	if depth > 0 && level > depth {
		if n.NumChildren() > 0 {
			b.WriteString("\n" + strings.Repeat("   ", level) + SubtleStyle.Render("..."))
		}
		return
	}

	for _, child := range n.Children() {
		b.WriteString("\n" + strings.Repeat("   ", level) + nodeLabel(child))
		renderChildren(b, child, level+1, depth)
	}
}

func nodeLabel(n *grammar.Node) string {
	var label string
	switch n.Kind() {
	case grammar.KindArgument:
		label = kindStyles["enum-value"].Render("<"+n.Name()+">") + SubtleStyle.Render(" "+n.ParserID())
	default:
		label = kindStyles["keyword"].Render(n.Name())
	}

	if target, ok := n.Redirect(); ok {
		to := "<root>"
		if len(target) > 0 {
			to = strings.Join(target, " ")
		}
		label += " " + WarningStyle.Render("→ "+to)
	}
	if n.Executable() {
		label += " " + SuccessStyle.Render("✓")
	}
	return label
}

func kindStyle(kind engine.CandidateKind) lipgloss.Style {
	if style, ok := kindStyles[kind.String()]; ok {
		return style
	}
	return ValueStyle
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/mcfcomplete/internal/view"
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(view.TitleStyle.Render("📦 Version: ") + view.ValueStyle.Render(data.Version))
	b.WriteString("\n\n")

	b.WriteString(renderConfigFiles(data))
	b.WriteString("\n\n")

	b.WriteString(renderGrammar(data.Grammar))
	b.WriteString("\n\n")

	b.WriteString(renderRegistries(data.Registries))

	return b.String()
}

func renderConfigFiles(data *Data) string {
	var b strings.Builder
	b.WriteString(view.SectionStyle.Render("📝 Configuration:") + "\n")

	if len(data.ConfigFiles) == 0 {
		b.WriteString("   " + view.SubtleStyle.Render("No configuration files found, using defaults"))
		return b.String()
	}

	for i, path := range data.ConfigFiles {
		b.WriteString(fmt.Sprintf("   %d. %s\n", i+1, view.ValueStyle.Render(path)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderGrammar(info *GrammarInfo) string {
	var b strings.Builder
	b.WriteString(view.SectionStyle.Render("🌳 Grammar:") + "\n")
	b.WriteString("   " + view.KeyStyle.Render("Path: ") + view.SubtleStyle.Render(info.Path) + "\n")

	if info.LoadErr != "" {
		b.WriteString("   " + view.KeyStyle.Render("Status: ") + view.ErrorStyle.Render("✗ "+info.LoadErr))
		return b.String()
	}

	b.WriteString("   " + view.KeyStyle.Render("Size: ") + view.ValueStyle.Render(formatBytes(info.Size)) + "\n")
	b.WriteString("   " + view.KeyStyle.Render("Nodes: ") + view.ValueStyle.Render(fmt.Sprintf(
		"%d (%d literals, %d arguments, %d redirects)", info.Nodes, info.Literals, info.Arguments, info.Redirects)) + "\n")

	switch {
	case info.Errors > 0:
		b.WriteString("   " + view.KeyStyle.Render("Status: ") + view.ErrorStyle.Render(fmt.Sprintf("✗ %d errors, %d warnings", info.Errors, info.Warnings)))
	case info.Warnings > 0:
		b.WriteString("   " + view.KeyStyle.Render("Status: ") + view.WarningStyle.Render(fmt.Sprintf("⚠ %d warnings", info.Warnings)))
	default:
		b.WriteString("   " + view.KeyStyle.Render("Status: ") + view.SuccessStyle.Render("✓ Valid"))
	}

	if len(info.Parsers) > 0 {
		b.WriteString("\n   " + view.KeyStyle.Render("Parsers:"))
		for _, id := range sortedKeys(info.Parsers) {
			name := id
			if name == "" {
				name = "(none)"
			}
			b.WriteString(fmt.Sprintf("\n      %s (%s)",
				view.ValueStyle.Render(name),
				view.SubtleStyle.Render(fmt.Sprintf("%d", info.Parsers[id]))))
		}
	}

	return b.String()
}

func renderRegistries(info *RegistriesInfo) string {
	var b strings.Builder
	b.WriteString(view.SectionStyle.Render("📚 Registries:") + "\n")
	b.WriteString("   " + view.KeyStyle.Render("Path: ") + view.SubtleStyle.Render(info.Path))

	if info.LoadErr != "" {
		b.WriteString("\n   " + view.KeyStyle.Render("Status: ") + view.ErrorStyle.Render("✗ "+info.LoadErr))
		return b.String()
	}

	b.WriteString("\n   " + view.KeyStyle.Render("Size: ") + view.ValueStyle.Render(formatBytes(info.Size)))
	if len(info.Entries) == 0 {
		b.WriteString("\n   " + view.WarningStyle.Render("No registries loaded, item and block arguments offer nothing"))
		return b.String()
	}

	for _, name := range sortedKeys(info.Entries) {
		b.WriteString(fmt.Sprintf("\n   %s %s",
			view.KeyStyle.Render(name+":"),
			view.ValueStyle.Render(fmt.Sprintf("%d entries", info.Entries[name]))))
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

package grammar

import "fmt"

// Severity of an integrity issue
type Severity string

// Issue severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a problem found by Check
type Issue struct {
	Path     string
	Severity Severity
	Message  string
}

// Check inspects the whole tree for problems the builder lets through:
// broken or cyclic redirects are errors, parser declarations that do not
// fit the node are warnings. The tree is still usable with warnings.
func (t *Tree) Check() []Issue {
	var issues []Issue

	t.Walk(func(n *Node) bool {
		if n.hasRedirect {
			if _, err := t.Resolve(n); err != nil {
				issues = append(issues, Issue{Path: n.PathString(), Severity: SeverityError, Message: err.Error()})
			}
		}

		switch n.kind {
		case KindArgument:
			if n.parserID == "" {
				issues = append(issues, Issue{
					Path:     n.PathString(),
					Severity: SeverityWarning,
					Message:  "argument has no parser, it will consume one token and offer no completions",
				})
			} else if n.parser == ParserUnknown {
				issues = append(issues, Issue{
					Path:     n.PathString(),
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("parser %q is not known, it will consume one token and offer no completions", n.parserID),
				})
			}
		case KindLiteral:
			if n.name == "" {
				issues = append(issues, Issue{
					Path:     n.PathString(),
					Severity: SeverityError,
					Message:  "literal with empty text can never be typed",
				})
			}
		}
		return true
	})

	return issues
}

// HasErrors reports whether any issue is an error
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

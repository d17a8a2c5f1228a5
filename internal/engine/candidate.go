package engine

import (
	"fmt"
	"strings"
)

// CandidateKind classifies a candidate for display only; it never affects
// matching.
type CandidateKind int

// Candidate kinds
const (
	KindKeyword CandidateKind = iota
	KindEnumValue
	KindLiteralValue
)

var kindNames = []string{"keyword", "enum-value", "literal-value"}

// String returns the kind name
func (k CandidateKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name
func (k CandidateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *CandidateKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = CandidateKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown candidate kind %q", string(text))
}

// Position is a zero-based line and byte column
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is the text a candidate replaces when accepted
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Candidate is one completion suggestion
type Candidate struct {
	Label            string        `json:"label"`
	Kind             CandidateKind `json:"kind"`
	Documentation    string        `json:"documentation,omitempty"`
	CommitCharacters []string      `json:"commitCharacters,omitempty"`
	Range            *Range        `json:"range,omitempty"`
}

// Matches reports whether the candidate survives the prefix filter. A
// namespaced identifier such as minecraft:stone also matches on the part
// after the namespace, so "sto" finds it.
func (c Candidate) Matches(prefix string) bool {
	if strings.HasPrefix(c.Label, prefix) {
		return true
	}
	if i := strings.IndexByte(c.Label, ':'); i > 0 {
		return strings.HasPrefix(c.Label[i+1:], prefix)
	}
	return false
}

// WithCommitCharacters returns a copy carrying chars in addition to the
// commit characters it already had.
func (c Candidate) WithCommitCharacters(chars ...string) Candidate {
	merged := make([]string, 0, len(c.CommitCharacters)+len(chars))
	seen := make(map[string]bool, cap(merged))
	for _, ch := range append(append([]string(nil), c.CommitCharacters...), chars...) {
		if seen[ch] {
			continue
		}
		seen[ch] = true
		merged = append(merged, ch)
	}
	c.CommitCharacters = merged
	return c
}

// Labels extracts candidate labels
func Labels(candidates []Candidate) []string {
	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		labels = append(labels, c.Label)
	}
	return labels
}

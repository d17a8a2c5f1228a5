package server

import "github.com/NikitaCOEUR/mcfcomplete/internal/engine"

// Response is the standard JSON response envelope.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LineRequest asks about a single command line.
type LineRequest struct {
	Line string `json:"line"`
}

// DocumentRequest asks for completions at a position of a function file.
type DocumentRequest struct {
	Text     string          `json:"text"`
	Position engine.Position `json:"position"`
}

// EmbeddedRequest asks for completions at a byte offset of a host file
// carrying embedded command blocks.
type EmbeddedRequest struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// CompleteResponse lists candidates.
type CompleteResponse struct {
	Candidates []engine.Candidate `json:"candidates"`
}

// ParseResponse describes where a line ends up in the grammar.
type ParseResponse struct {
	Tip        []string          `json:"tip" yaml:"tip"`
	TipKind    string            `json:"tip_kind" yaml:"tip_kind"`
	Remainder  string            `json:"remainder" yaml:"remainder"`
	Consumed   int               `json:"consumed" yaml:"consumed"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Uptime       string         `json:"uptime"`
	Version      string         `json:"version"`
	GrammarNodes int            `json:"grammar_nodes"`
	Registries   map[string]int `json:"registries"`
}

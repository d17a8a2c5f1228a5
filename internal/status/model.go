package status

// Data contains all the information to display in status
type Data struct {
	Version string

	// Configuration files applied, in merge order
	ConfigFiles []string

	Grammar    *GrammarInfo
	Registries *RegistriesInfo
}

// GrammarInfo describes the loaded grammar
type GrammarInfo struct {
	Path      string
	Size      int64
	Nodes     int
	Literals  int
	Arguments int
	Redirects int
	// Parsers counts argument nodes per parser identifier
	Parsers  map[string]int
	Errors   int
	Warnings int
	LoadErr  string
}

// RegistriesInfo describes the loaded registries
type RegistriesInfo struct {
	Path    string
	Size    int64
	Entries map[string]int
	LoadErr string
}

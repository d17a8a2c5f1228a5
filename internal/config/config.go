// Package config handles loading and merging of mcfcomplete configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".mcfcomplete.yml",
	".mcfcomplete.yaml",
	".mcfcomplete.toml",
	".mcfcomplete.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"
)

// Keys holding file paths. Relative values resolve against the directory
// of the file that set them.
var pathKeys = []string{"grammar", "registries", "repl.history_file"}

// ServerConfig configures the HTTP completion service
type ServerConfig struct {
	Addr        string `koanf:"addr" json:"addr,omitempty" jsonschema:"minLength=1,description=Listen address of the completion service"`
	ReadTimeout string `koanf:"read_timeout" json:"read_timeout,omitempty" jsonschema:"description=Request read timeout such as 5s"`
}

// ReplConfig configures the interactive shell
type ReplConfig struct {
	Prompt      string `koanf:"prompt" json:"prompt,omitempty" jsonschema:"description=Prompt shown before each line"`
	HistoryFile string `koanf:"history_file" json:"history_file,omitempty" jsonschema:"description=File keeping line history (empty disables history)"`
}

// OutputConfig configures how candidates are printed
type OutputConfig struct {
	Format   string `koanf:"format" json:"format,omitempty" jsonschema:"enum=text,enum=json,enum=yaml,enum=template,description=Output format of the complete and parse commands"`
	MaxItems int    `koanf:"max_items" json:"max_items,omitempty" jsonschema:"minimum=0,description=Maximum candidates printed (0 means no limit)"`
	Template string `koanf:"template" json:"template,omitempty" jsonschema:"description=Go template applied to each candidate when format is template"`
}

// Config represents a mcfcomplete configuration
type Config struct {
	Grammar    string       `koanf:"grammar" json:"grammar,omitempty" jsonschema:"description=Path to the command grammar (commands.json)"`
	Registries string       `koanf:"registries" json:"registries,omitempty" jsonschema:"description=Path to the registries file"`
	LogLevel   string       `koanf:"log_level" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Log level"`
	LogFormat  string       `koanf:"log_format" json:"log_format,omitempty" jsonschema:"enum=text,enum=json,description=Log output format"`
	Server     ServerConfig `koanf:"server" json:"server,omitempty" jsonschema:"description=HTTP service settings"`
	Repl       ReplConfig   `koanf:"repl" json:"repl,omitempty" jsonschema:"description=Interactive shell settings"`
	Output     OutputConfig `koanf:"output" json:"output,omitempty" jsonschema:"description=Output settings"`
}

// ReadTimeout parses the server read timeout
func (c *Config) ReadTimeout() (time.Duration, error) {
	if c.Server.ReadTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Server.ReadTimeout)
}

// cachedFile stores a parsed file with its modification time
type cachedFile struct {
	k       *koanf.Koanf
	modTime time.Time
	size    int64
}

// Loader handles loading and parsing configuration files
type Loader struct {
	mu sync.Mutex
	// Cache for parsed files with modtime validation
	parsedCache map[string]*cachedFile
}

// New creates a new config loader
func New() *Loader {
	return &Loader{
		parsedCache: make(map[string]*cachedFile),
	}
}

// Defaults returns the built-in configuration
func (l *Loader) Defaults() (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}
	return unmarshal(k, "")
}

// Load reads one configuration file on top of the defaults
func (l *Loader) Load(path string) (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	fk, err := l.parseFile(path)
	if err != nil {
		return nil, err
	}
	if err := k.Merge(fk); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to merge config", err)
	}
	return unmarshal(k, path)
}

// LoadHierarchy merges defaults, the global config and every config file
// from the filesystem root down to dir. Later files win.
// It returns the merged config and the files that were applied.
func (l *Loader) LoadHierarchy(dir string) (*Config, []string, error) {
	k, err := defaults()
	if err != nil {
		return nil, nil, err
	}

	var files []string
	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			files = append(files, globalPath)
		}
	}

	local, err := FindConfigFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	files = append(files, local...)

	for _, path := range files {
		fk, err := l.parseFile(path)
		if err != nil {
			return nil, files, err
		}
		if err := k.Merge(fk); err != nil {
			return nil, files, derrors.NewConfigurationError(path, "failed to merge config", err)
		}
	}

	cfg, err := unmarshal(k, "")
	if err != nil {
		return nil, files, err
	}
	return cfg, files, nil
}

// parseFile loads a single file into its own koanf instance with its
// relative paths already resolved.
func (l *Loader) parseFile(path string) (*koanf.Koanf, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.NewConfigurationError(path, "config file not found", err)
		}
		return nil, derrors.NewConfigurationError(path, "failed to stat config", err)
	}

	l.mu.Lock()
	cached, exists := l.parsedCache[path]
	l.mu.Unlock()
	if exists && !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
		return cached.k, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, err.Error(), nil)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}
	if err := resolvePaths(k, filepath.Dir(path)); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to resolve paths", err)
	}

	l.mu.Lock()
	l.parsedCache[path] = &cachedFile{k: k, modTime: fileInfo.ModTime(), size: fileInfo.Size()}
	l.mu.Unlock()
	return k, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

func resolvePaths(k *koanf.Koanf, dir string) error {
	for _, key := range pathKeys {
		if !k.Exists(key) {
			continue
		}
		value := expandTemplate(k.String(key), dir)
		if value != "" && !filepath.IsAbs(value) {
			value = filepath.Join(dir, value)
		}
		if err := k.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, derrors.NewConfigurationError("<defaults>", "failed to load defaults", err)
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf, path string) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	return cfg, nil
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "mcfcomplete", GlobalConfigName), nil
}

// FindConfigFiles searches for config files from dir up to the filesystem root.
// Returns paths in order from root to leaf (for proper merging)
func FindConfigFiles(startDir string) ([]string, error) {
	var configs []string
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				configs = append(configs, path)
				break // Only one config per directory
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	// Reverse to get root-to-leaf order
	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}

	return configs, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/mcfcomplete/internal/config"
	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/logger"
	"github.com/NikitaCOEUR/mcfcomplete/internal/registry"
	"github.com/NikitaCOEUR/mcfcomplete/internal/timing"
	"github.com/NikitaCOEUR/mcfcomplete/internal/trace"
)

// Options are the global flags every command accepts. Empty fields fall
// back to the configuration.
type Options struct {
	// ConfigPath is an explicit config file. When empty the global config
	// and every config file from the root down to the working directory
	// are merged.
	ConfigPath string
	Grammar    string
	Registries string
	LogLevel   string
	LogFormat  string
	// Out receives command output, nil means os.Stdout
	Out io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// settings is the resolved configuration of a command
type settings struct {
	cfg   *config.Config
	files []string
	log   *logger.Logger
}

// components holds the loaded grammar and registries
type components struct {
	settings
	tree       *grammar.Tree
	registries registry.Registries
	engine     *engine.Engine
}

// loadSettings resolves the configuration and applies flag overrides
func loadSettings(opts Options) (*settings, error) {
	loader := config.New()

	var cfg *config.Config
	var files []string
	var err error
	if opts.ConfigPath != "" {
		cfg, err = loader.Load(opts.ConfigPath)
		files = []string{opts.ConfigPath}
	} else {
		var dir string
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg, files, err = loader.LoadHierarchy(dir)
	}
	if err != nil {
		return nil, err
	}

	if opts.Grammar != "" {
		cfg.Grammar = opts.Grammar
	}
	if opts.Registries != "" {
		cfg.Registries = opts.Registries
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}

	log := logger.NewWithFormat(cfg.LogLevel, os.Stderr, cfg.LogFormat)
	log.Debug().Strs("config_files", files).Str("grammar", cfg.Grammar).Msg("configuration resolved")

	return &settings{cfg: cfg, files: files, log: log}, nil
}

// initializeComponents loads the configuration, the grammar and the
// registries and builds an engine over them. A missing registries file is
// not fatal: registry-backed arguments then offer nothing.
func initializeComponents(ctx context.Context, opts Options) (*components, error) {
	timer := timing.NewTimer()

	s, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}
	timer.Mark("config")

	c := &components{settings: *s}

	trace.WithRegion(ctx, "load_grammar", func() {
		err = timer.Stage("grammar", func() (err error) {
			c.tree, err = grammar.Load(s.cfg.Grammar)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	trace.WithRegion(ctx, "load_registries", func() {
		err = timer.Stage("registries", func() (err error) {
			c.registries, err = loadRegistries(s.cfg.Registries, s.log)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	c.engine = engine.New(c.tree, c.registries)

	s.log.Debug().
		Int("nodes", c.tree.Size()).
		Strs("registries", c.registries.Names()).
		Str("timing", timer.Summary()).
		Msg("components loaded")

	return c, nil
}

func loadRegistries(path string, log *logger.Logger) (registry.Registries, error) {
	if path == "" {
		return registry.Registries{}, nil
	}

	regs, err := registry.Load(path)
	if err == nil {
		return regs, nil
	}

	var loadErr *derrors.LoadError
	if errors.As(err, &loadErr) && errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("registries file not found, registry completions disabled")
		return registry.Registries{}, nil
	}
	return registry.Registries{}, err
}

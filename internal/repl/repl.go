// Package repl runs an interactive prompt with tab completion driven by
// the completion engine.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/logger"
	"github.com/NikitaCOEUR/mcfcomplete/internal/view"
)

var errExit = errors.New("exit")

// Config configures the prompt
type Config struct {
	Prompt      string
	HistoryFile string
	Engine      *engine.Engine
	Logger      *logger.Logger // nil = discard
	Stdout      io.Writer      // nil = os.Stdout
}

// REPL is the interactive prompt
type REPL struct {
	cfg    Config
	log    *logger.Logger
	stdout io.Writer
}

// New creates a prompt
func New(cfg Config) *REPL {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "mcf> "
	}
	return &REPL{cfg: cfg, log: log.Component("repl"), stdout: stdout}
}

// Run reads lines until EOF or an exit command
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.cfg.Prompt,
		HistoryFile:     r.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewCompleter(r.cfg.Engine),
		Stdout:          r.stdout,
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(r.stdout, "mcfcomplete - press TAB to complete, type :help for commands")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			return err
		}

		out, err := r.Eval(line)
		if err != nil {
			if err == errExit {
				return nil
			}
			r.log.Debug().Err(err).Str("line", line).Msg("evaluation failed")
			fmt.Fprintln(r.stdout, view.ErrorStyle.Render("error: "+err.Error()))
			continue
		}
		if out != "" {
			fmt.Fprintln(r.stdout, out)
		}
	}
	return nil
}

// Eval runs one entered line and returns what to print. Lines starting
// with ':' are prompt commands; anything else is parsed as a command line
// and its completions are listed.
func (r *REPL) Eval(line string) (string, error) {
	if strings.TrimSpace(line) == "" {
		return "", nil
	}

	if strings.HasPrefix(strings.TrimSpace(line), ":") {
		return r.command(strings.Fields(strings.TrimSpace(line)[1:]))
	}

	result, err := r.cfg.Engine.Parse(line)
	if err != nil {
		return "", err
	}
	candidates, err := r.cfg.Engine.Candidates(result)
	if err != nil {
		return "", err
	}
	return view.RenderParse(line, result) + "\n" + view.RenderCandidates(line, candidates, 0), nil
}

func (r *REPL) command(args []string) (string, error) {
	if len(args) == 0 {
		return helpText(), nil
	}

	switch args[0] {
	case "exit", "quit", "q":
		return "", errExit

	case "help", "?":
		return helpText(), nil

	case "tree":
		depth := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return "", fmt.Errorf("tree: invalid depth %q", args[1])
			}
			depth = n
		}
		return view.RenderTree(r.cfg.Engine.Tree(), depth), nil

	case "check":
		return view.RenderIssues(r.cfg.Engine.Tree().Check()), nil

	default:
		return "", fmt.Errorf("unknown command: :%s", args[0])
	}
}

func helpText() string {
	var b strings.Builder
	b.WriteString(view.SectionStyle.Render("Commands:"))
	rows := [][2]string{
		{":tree [depth]", "Show the grammar outline"},
		{":check", "Check the grammar for errors"},
		{":help", "Show this help"},
		{":exit", "Leave the prompt"},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("\n   %-15s %s", row[0], view.SubtleStyle.Render(row[1])))
	}
	return b.String()
}

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/passbi/railnet/internal/config"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/gtfs"
	"github.com/passbi/railnet/internal/routing"
)

var (
	// ErrUnknownCommand is returned for a command name with no handler
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArguments is returned when a command's arguments do not parse
	ErrBadArguments = errors.New("bad arguments")
)

// Console reads line-oriented commands and prints their results
type Console struct {
	net       *graph.Network
	router    *routing.Router
	positions *routing.PositionEstimator
	out       io.Writer
	prompt    string
	echo      bool
	imports   gtfs.ImportOptions
	commands  map[string]command
}

// New creates a console over a network and the router that queries it
func New(net *graph.Network, router *routing.Router, out io.Writer, cfg config.Config) *Console {
	c := &Console{
		net:       net,
		router:    router,
		positions: routing.NewPositionEstimator(net),
		out:       out,
		prompt:    cfg.Prompt,
		echo:      cfg.Echo,
		imports:   gtfs.ImportOptions{DedupeMeters: cfg.DedupeMeters, RailOnly: cfg.RailOnly},
	}
	c.commands = commandTable()
	return c
}

// Run executes commands from in until it is exhausted or quit is read.
// Command failures are printed and do not stop the run.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.echo {
			fmt.Fprintf(c.out, "%s%s\n", c.prompt, line)
		}

		quit, err := c.Execute(line)
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

// Execute runs a single command line and reports whether it was quit
func (c *Console) Execute(line string) (bool, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return false, nil
	}

	name, args := tokens[0], tokens[1:]
	if name == "quit" {
		return true, nil
	}

	cmd, ok := c.commands[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return false, fmt.Errorf("%w: usage: %s", ErrBadArguments, cmd.usage)
	}
	if err := cmd.run(c, args); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return false, nil
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// result prints OK or Failed for a mutation
func (c *Console) result(ok bool) {
	if ok {
		c.println("OK")
		return
	}
	c.println("Failed")
}

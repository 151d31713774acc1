package commands

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and gets the remaining positional args.
type Command struct {
	Name    string
	Help    string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute or RunScript.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting, with output discarded.
// Parse errors come back from Execute.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token of a line (e.g. "step").
// fs is that command's FlagSet (nil for none); run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, help string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Help: help, FlagSet: fs, Run: run}
}

// Parse interprets one script line. Blank lines and lines starting with '#' yield ok false.
// A leading "cmd " (the terminal form) is accepted and stripped. The rest is split on whitespace.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line+" ", prefix))
	if line == "" {
		return nil, false
	}
	return strings.Fields(line), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	// Flags do not carry over from an earlier line.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// RunScript executes r line by line and stops at the first failing command.
func (r *Registry) RunScript(src io.Reader) error {
	sc := bufio.NewScanner(src)
	n := 0
	for sc.Scan() {
		n++
		args, ok := Parse(sc.Text())
		if !ok {
			continue
		}
		if err := r.Execute(args); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage writes one line per command with its help text and flags.
func (r *Registry) Usage(w io.Writer) {
	for _, name := range r.Names() {
		cmd := r.cmds[name]
		var flags []string
		cmd.FlagSet.VisitAll(func(f *flag.Flag) {
			flags = append(flags, "-"+f.Name)
		})
		fmt.Fprintf(w, "%-10s %s", name, cmd.Help)
		if len(flags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(flags, " "))
		}
		fmt.Fprintln(w)
	}
}

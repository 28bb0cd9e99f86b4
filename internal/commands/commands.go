package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

const prefix = "cmd "

// RunFunc runs a command after its flags are parsed. args are the positional arguments left over.
// The returned text, if any, is echoed to the console.
type RunFunc func(args []string) (string, error)

// Command is a subcommand with its own flags.
type Command struct {
	Name    string
	Usage   string
	FlagSet *pflag.FlagSet
	Run     RunFunc
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// ErrUnknown is returned for a subcommand that was never registered.
var ErrUnknown = errors.New("unknown command")

// NewRegistry returns a registry that already knows "help".
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.Register("help", "list commands", nil, func([]string) (string, error) {
		return r.Help(), nil
	})
	return r
}

// NewFlagSet returns a quiet flag set for a command; parse errors are returned, not printed.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *pflag.FlagSet, run RunFunc) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Help lists commands with their usage, one per line.
func (r *Registry) Help() string {
	var b strings.Builder
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "cmd %s - %s", name, r.cmds[name].Usage)
	}
	return b.String()
}

// Parse interprets a console line. Lines starting with "cmd " are split into fields and returned
// with ok true.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == strings.TrimSpace(prefix) {
		return nil, true
	}
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	return strings.Fields(line[len(prefix):]), true
}

// Execute runs args[0] with args[1:] as flags and positional arguments.
func (r *Registry) Execute(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing subcommand (try cmd help)")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknown, args[0])
	}
	// Flag sets are reused between runs; start each run from the defaults.
	cmd.FlagSet.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

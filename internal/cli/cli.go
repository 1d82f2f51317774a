// Package cli implements dawgo's command-line front end: a thin
// argument-parsing and dispatch layer over the dawgo package's façade
// types.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/kbravh/dawgo"
)

// Run parses args and executes the requested subcommand, writing results
// to stdout and diagnostics to stderr. It returns a process exit code.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, usage())
		return 2
	}

	fs := flag.NewFlagSet("dawgo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "automaton format: dawg, completion, bytes, record, int, intcompletion")
	recordFormat := fs.String("record-format", "", "packing format string for --format=record, e.g. \">3H\"")
	configPath := fs.String("config", "", "path to a JSONC config file")
	replace := fs.String("replace", "", "fuzzy replacement table, e.g. \"a=b,c=d\"")
	out := fs.String("out", "", "write output to this path atomically instead of stdout")

	command := args[1]
	rest := args[2:]
	if err := fs.Parse(rest); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	positional := fs.Args()

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg, err := LoadConfig(workDir, *configPath, env)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *format != "" {
		cfg.Format = *format
	}

	replaceMapping, err := parseReplaceFlag(*replace)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if replaceMapping == nil && len(cfg.Replaces) > 0 {
		replaceMapping = cfg.Replaces
	}

	var table *dawgo.ReplaceTable
	if len(replaceMapping) > 0 {
		table, err = dawgo.CompileReplaces(replaceMapping)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	req := request{
		command:      command,
		positional:   positional,
		format:       cfg.Format,
		recordFormat: *recordFormat,
		table:        table,
		out:          *out,
	}

	lines, err := dispatch(req)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	output := strings.Join(lines, "\n")
	if len(lines) > 0 {
		output += "\n"
	}

	if req.out != "" {
		if err := atomic.WriteFile(req.out, strings.NewReader(output)); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	fmt.Fprint(stdout, output)
	return 0
}

type request struct {
	command      string
	positional   []string
	format       string
	recordFormat string
	table        *dawgo.ReplaceTable
	out          string
}

func dispatch(req request) ([]string, error) {
	if len(req.positional) < 1 {
		return nil, fmt.Errorf("%w: need a file path", errMissingArgs)
	}
	path := req.positional[0]
	args := req.positional[1:]

	switch req.command {
	case "contains":
		return runContains(path, args, req)
	case "find", "get":
		return runGet(path, args, req)
	case "prefixes":
		return runPrefixes(path, args, req)
	case "keys":
		return runKeys(path, args, req)
	case "items":
		return runItems(path, args, req)
	case "similar":
		return runSimilar(path, args, req)
	case "dump":
		return runDump(path, req)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, req.command)
	}
}

func requireArg(args []string, name string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: %s", errMissingArgs, name)
	}
	return args[0], nil
}

func usage() string {
	return `dawgo <command> [--format FORMAT] [--config PATH] [--replace a=b,c=d] [--out PATH] <file> [args...]

Commands:
  contains <file> <key>      report whether key is present
  find|get <file> <key>      print the value(s) stored for key
  prefixes <file> <key>      print every stored prefix of key
  keys <file> [prefix]       print every stored key beginning with prefix
  items <file> [prefix]      print every (key, value) pair beginning with prefix
  similar <file> <key>       print every key reachable from key via --replace
  dump <file>                print every stored key

Formats: dawg, completion, bytes, record (checked against --record-format when given), int, intcompletion`
}

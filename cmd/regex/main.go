// Command regex compiles a pattern and tests it against input from
// the command line, colorizing the accept/reject verdict the way
// gogrep colorizes its submatches.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/regraph/nfarex/internal/dump"
	"github.com/regraph/nfarex/pkg/regex"
)

var cli struct {
	Pattern string `help:"Regular expression to compile." required:"" short:"p"`
	Verbose bool   `help:"Enable diagnostic logging of builder/optimizer/executor decisions." short:"v"`

	Accept struct {
		Input string `arg:"" help:"Input string to test against the pattern."`
	} `cmd:"" help:"Report whether input is fully matched by the pattern."`

	Inspect struct {
		Dump string `help:"Write a Go source snapshot of the compiled graph to this file." optional:""`
	} `cmd:"" help:"Compile the pattern and report its graph shape."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("regex"),
		kong.Description("Compiles a pattern into an NFA and tests input against it."),
		kong.UsageOnError(),
	)

	r, err := regex.CompileConfig(regex.Config{Pattern: cli.Pattern, Verbose: cli.Verbose})
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("compile error: %v", err))
		os.Exit(2)
	}

	switch ctx.Command() {
	case "accept <input>":
		runAccept(r)
	case "inspect":
		runInspect(r)
	default:
		fmt.Fprintln(os.Stderr, color.RedString("unknown command: %s", ctx.Command()))
		os.Exit(2)
	}
}

func runAccept(r *regex.Regex) {
	if r.Accept(cli.Accept.Input) {
		color.New(color.FgGreen, color.Bold).Println("accept")
		return
	}
	color.New(color.FgRed, color.Bold).Println("reject")
	os.Exit(1)
}

func runInspect(r *regex.Regex) {
	a := r.Analyze()
	fmt.Printf("states=%d class=%v range=%v lookahead=%v macro=%v epsilonsCollapsed=%d maxGroupDepth=%d\n",
		a.StateCount, a.HasClass, a.HasRange, a.HasLookahead, a.HasMacro, a.EpsilonsCollapsed, a.MaxGroupDepth)

	if cli.Inspect.Dump == "" {
		return
	}
	f, err := os.Create(cli.Inspect.Dump)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("dump: %v", err))
		os.Exit(2)
	}
	defer f.Close()
	if err := dump.WriteGoFile(f, "snapshots", "graphDump", r.Graph()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("dump: %v", err))
		os.Exit(2)
	}
}

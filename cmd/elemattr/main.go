package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pthm/elemattr/lib/generator"
)

const version = "0.1.0"

type command struct {
	summary string
	run     func(args []string) error
}

var commands = map[string]command{
	"generate": {"generate typed accessors for components", runGenerate},
	"clean":    {"remove generated files (*_attrs.go)", runClean},
	"version":  {"print version", runVersion},
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		usage()
		if len(os.Args) < 2 {
			os.Exit(2)
		}
		return
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "elemattr: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err := cmd.run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "elemattr: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("elemattr - attribute binding for server-side custom elements")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  elemattr <command> [flags] [packages]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, name := range []string{"generate", "clean", "version"} {
		fmt.Printf("  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Println()
	fmt.Println("Packages default to ./... when omitted. Pass --dry-run to")
	fmt.Println("generate to preview output without writing files.")
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report files without writing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := generator.New(generator.Options{DryRun: *dryRun})
	return gen.Generate(patterns(fs.Args())...)
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := generator.New(generator.Options{})
	return gen.Clean(patterns(fs.Args())...)
}

func runVersion([]string) error {
	fmt.Printf("elemattr %s\n", version)
	return nil
}

func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"./..."}
	}
	return args
}

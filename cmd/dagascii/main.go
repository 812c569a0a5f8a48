// Command dagascii renders DAGs of pre-formatted text boxes into ASCII or
// Unicode diagrams, either once to stdout or continuously through a local
// preview server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/teleivo/dagascii"
	"github.com/teleivo/dagascii/graph"
	"github.com/teleivo/dagascii/internal/version"
	"github.com/teleivo/dagascii/preview"
	"github.com/teleivo/dagascii/theme"
)

// errFlagParse is a sentinel error indicating flag parsing failed. The flag
// package already printed the error, so main should not print again.
var errFlagParse = errors.New("flag parse error")

func main() {
	code, err := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil && err != errFlagParse {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(code)
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	if len(args) < 2 {
		usage(wErr)
		return 2, nil
	}

	if args[1] == "-h" || args[1] == "--help" || args[1] == "help" {
		usage(wErr)
		return 0, nil
	}

	switch args[1] {
	case "render":
		return runRender(args[2:], r, w, wErr)
	case "preview":
		return runPreview(args[2:], wErr)
	case "version":
		_, _ = fmt.Fprintln(w, version.Version())
		return 0, nil
	case "":
		return 2, errors.New("no command specified")
	default:
		return 2, fmt.Errorf("unknown command: %s", args[1])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "dagascii renders DAGs of text boxes as ASCII/Unicode diagrams")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "usage: dagascii <command> [args]")
	_, _ = fmt.Fprintln(w, "commands: render, preview, version")
}

func runRender(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("render", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: dagascii render [flags] [file]")
		_, _ = fmt.Fprintln(wErr, "reads a JSON graph description from file, or stdin if omitted")
		_, _ = fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}
	themeName := flags.String("theme", "", "glyph theme: default, light, rounded, or heavy (overrides VISUALFLOW_THEME)")
	cpuProfile := flags.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile := flags.String("memprofile", "", "write memory profile to `file`")

	err := flags.Parse(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	err = profile(func() error {
		in := r
		if flags.NArg() == 1 {
			f, err := os.Open(flags.Arg(0))
			if err != nil {
				return fmt.Errorf("failed to open file: %v", err)
			}
			defer func() { _ = f.Close() }()
			in = f
		}

		src, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("error reading input: %v", err)
		}

		dag, err := graph.DecodeJSON(src)
		if err != nil {
			return err
		}

		var opts []dagascii.Option
		if *themeName != "" {
			opts = append(opts, dagascii.WithTheme(theme.Parse(*themeName)))
		}

		out, err := dagascii.Render(dag, opts...)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(w, out)
		return nil
	}, *cpuProfile, *memProfile)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func runPreview(args []string, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("preview", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: dagascii preview [flags] <file>")
		_, _ = fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}
	port := flags.String("port", "0", "HTTP server port (0 for a random available port)")
	debug := flags.Bool("debug", false, "enable debug logging")
	cpuProfile := flags.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile := flags.String("memprofile", "", "write memory profile to `file`")

	err := flags.Parse(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2, nil
	}
	file := flags.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = profile(func() error {
		p, err := preview.New(preview.Config{
			File:   file,
			Port:   *port,
			Debug:  *debug,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		if err != nil {
			return err
		}
		return p.Watch(ctx)
	}, *cpuProfile, *memProfile)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func profile(fn func() error, cpuProfile, memProfile string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %v", err)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	err := fn()
	if err != nil {
		return err
	}

	if memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %v", err)
		}
		defer func() { _ = f.Close() }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %v", err)
		}
	}

	return nil
}

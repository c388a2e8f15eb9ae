package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/internal/samples"
	"github.com/wippyai/ffi-reflect/resolve"
	"github.com/wippyai/ffi-reflect/witbridge"
)

func main() {
	var (
		typeName    = flag.String("type", "", "Type to describe (default: all registered types)")
		list        = flag.Bool("list", false, "List registered types and exit")
		showWIT     = flag.Bool("wit", false, "Show the WIT mapping and Canonical ABI layout")
		ptrSize     = flag.Uint("ptr", 4, "Guest pointer width in bytes (4 or 8)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log resolver activity to stderr")
	)
	flag.Parse()

	if *ptrSize != 4 && *ptrSize != 8 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-type Name] [-wit] [-ptr 4|8] [-v]")
		fmt.Fprintln(os.Stderr, "       inspect -list")
		fmt.Fprintln(os.Stderr, "       inspect -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	r, err := newResolver(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b := witbridge.New(witbridge.Options{PointerSize: uint32(*ptrSize)})

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(r, b); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, r, b, *typeName, *list, *showWIT); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newResolver(logger *zap.Logger) (*resolve.Resolver, error) {
	opts := resolve.DefaultOptions()
	opts.Logger = logger
	r := resolve.New(opts)
	if err := r.Register(samples.Decls()...); err != nil {
		return nil, fmt.Errorf("register samples: %w", err)
	}
	return r, nil
}

func run(w io.Writer, r *resolve.Resolver, b *witbridge.Bridge, typeName string, listOnly, showWIT bool) error {
	names := r.Names()
	if listOnly {
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	if typeName != "" {
		names = []string{typeName}
	}

	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		d, err := r.Derive(name)
		if err != nil {
			return fmt.Errorf("derive %s: %w", name, err)
		}
		fmt.Fprint(w, descriptor.Format(d))
		if showWIT {
			fmt.Fprint(w, witReport(b, d))
		}
	}
	return nil
}

// witReport renders the bridge view of d. Types with no WIT mapping
// report the reason instead of failing the whole listing.
func witReport(b *witbridge.Bridge, d descriptor.Descriptor) string {
	var sb strings.Builder
	t, err := b.ToWIT(d)
	if err != nil {
		fmt.Fprintf(&sb, "  wit: %v\n", err)
		return sb.String()
	}
	fmt.Fprintf(&sb, "  wit: %s\n", witTypeStr(t))

	report, err := b.Check(d)
	if err != nil {
		fmt.Fprintf(&sb, "  layout: %v\n", err)
		return sb.String()
	}
	fmt.Fprintf(&sb, "  canonical: size=%d align=%d\n", report.Canonical.Size, report.Canonical.Align)
	fmt.Fprintf(&sb, "  native:    size=%d align=%d\n", report.Native.Size, report.Native.Align)
	if report.Compatible {
		sb.WriteString("  compatible: yes\n")
	} else {
		fmt.Fprintf(&sb, "  compatible: no (%s)\n", strings.Join(report.Mismatches, ", "))
	}

	flat, err := b.Flatten(d)
	if err == nil {
		fmt.Fprintf(&sb, "  flat: [%s]\n", strings.Join(witbridge.TypeNames(flat), " "))
	}
	return sb.String()
}

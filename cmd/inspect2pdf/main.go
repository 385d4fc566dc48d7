package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(context.Background(), os.Args[1:], DefaultEnv()))
}

// runMain parses args, runs the batch and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "inspect2pdf %s\n", Version)
		return ExitSuccess
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	// Per-file failures are reported by runConvert itself.
	err = runConvert(ctx, positional, flags, env)
	if err != nil && !errors.Is(err, ErrConversionsFailed) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

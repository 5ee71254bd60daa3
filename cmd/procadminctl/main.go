package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/skillcoder/procadmin/internal/adapters/outbound/adminclient"
	"github.com/skillcoder/procadmin/internal/infra/logging"
	"github.com/skillcoder/procadmin/internal/logic/admin"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitPropertyNotSet
)

var (
	errUsage          = errors.New("usage")
	errPropertyNotSet = errors.New("property not set")
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)

	switch {
	case err == nil:
		os.Exit(exitOK)
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(exitOK)
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	case errors.Is(err, errPropertyNotSet):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitPropertyNotSet)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitFailure)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("procadminctl", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: procadminctl [flags] ready|embedded|property KEY|shutdown|wait-ready")
		flags.PrintDefaults()
	}

	addr := flags.String("addr", "127.0.0.1:8080", "management address of the process")
	name := flags.String("name", admin.DefaultObjectName, "object name the process is published under")
	timeout := flags.Duration("timeout", 30*time.Second, "how long wait-ready waits")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := logging.NewWithWriter(stderr, "text", *logLevel)

	client, err := adminclient.New(logger, *addr, *name)
	if err != nil {
		return fmt.Errorf("new client: %w", err)
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()

		return fmt.Errorf("%w: missing command", errUsage)
	}

	switch command := rest[0]; command {
	case "ready":
		ready, err := client.Ready(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(stdout, ready)
	case "embedded":
		embedded, err := client.EmbeddedWebApplication(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(stdout, embedded)
	case "property":
		if len(rest) != 2 {
			return fmt.Errorf("%w: property takes exactly one KEY", errUsage)
		}

		value, found, err := client.Property(ctx, rest[1])
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%w: %s", errPropertyNotSet, rest[1])
		}

		fmt.Fprintln(stdout, value)
	case "shutdown":
		if err := client.Shutdown(ctx); err != nil {
			return err
		}

		fmt.Fprintln(stdout, "shutdown requested")
	case "wait-ready":
		if err := client.WaitReady(ctx, *timeout); err != nil {
			return err
		}

		fmt.Fprintln(stdout, "ready")
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	return nil
}

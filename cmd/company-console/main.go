// Command company-console is a terminal client for the company management API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeroco/company-console/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, bootstrap.LoadConfig)
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate failure status to callers
}

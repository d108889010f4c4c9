// Package main is the entry point for the udin server and build tooling.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"udin/src/app/cli"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.RootCmd().ExecuteContext(ctx)
}

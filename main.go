package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/todo-tracker/config"
	"github.com/example/todo-tracker/logging"
	"github.com/example/todo-tracker/modules/cli"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitStorageError)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat))

	os.Exit(cli.Main(context.Background(), os.Args[1:], cli.Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
		Logger: logger,
	}))
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/coursehub/internal/client/cli"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	// "coursehub-cli login" runs one command; no command starts the REPL
	cmds := flagx.Positional(os.Args[1:], config.ValuedFlags)
	if len(cmds) == 0 {
		app.Run(ctx)
		return
	}

	if len(cmds) > 1 {
		fmt.Fprintln(os.Stderr, "usage: client [flags] [register|login|profile|logout]")
		os.Exit(2)
	}
	if err := app.Exec(ctx, cmds[0]); err != nil {
		os.Exit(1)
	}
}

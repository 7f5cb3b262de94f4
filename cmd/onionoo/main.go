package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/ooni/onionoo/internal/cli/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.Run(ctx, os.Args[1:])
	stop()
	if err != nil {
		log.WithError(err).Error("onionoo failed")
		os.Exit(1)
	}
}

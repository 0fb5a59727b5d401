// Command juris searches a folder of legal documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/juris/internal/adapters/driving/cli"
	"github.com/custodia-labs/juris/internal/app"
	"github.com/custodia-labs/juris/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetBootstrap(app.Bootstrap)
	err := cli.Execute(ctx)
	stop()
	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

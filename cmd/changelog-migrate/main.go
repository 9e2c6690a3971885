// Command changelog-migrate converts a changelog RSS feed into one MDX
// document.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/cli"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	cli.SetFactory(buildServices)
	cli.SetInitFactory(buildConfigWriter)

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		cancel()
		os.Exit(1)
	}
}

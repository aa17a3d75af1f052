/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/config"
	"github.com/Seednode/cardhub/internal/transport"

	_ "github.com/Seednode/cardhub/modules/rummy"
)

func main() {
	log.SetFlags(0)

	cfg := &config.Config{}

	serve := func(ctx context.Context, cfg *config.Config) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return transport.Serve(ctx, cfg, applog.New(cfg.Verbose))
	}

	cobra.CheckErr(config.NewCommand(cfg, serve).Execute())
}

// Package main imports asset-pack manifests into the sprite catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	packimportcmd "github.com/emberkeep/spritebank/internal/cmd/packimport"
	"github.com/emberkeep/spritebank/internal/platform/config"
)

func main() {
	if err := config.LoadDotenv(""); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := packimportcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[PACK-IMPORTER] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := packimportcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}

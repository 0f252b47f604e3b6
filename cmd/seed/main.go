// Package main seeds the sprite catalog with the bundled characters,
// stats, and animation packs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/emberkeep/spritebank/internal/cmd/seed"
	"github.com/emberkeep/spritebank/internal/platform/config"
)

func main() {
	if err := config.LoadDotenv(""); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[SEED] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}

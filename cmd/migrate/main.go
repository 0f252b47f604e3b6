// Package main applies sprite catalog schema migrations.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	migratecmd "github.com/emberkeep/spritebank/internal/cmd/migrate"
	"github.com/emberkeep/spritebank/internal/platform/config"
)

func main() {
	if err := config.LoadDotenv(""); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := migratecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[MIGRATE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migratecmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}

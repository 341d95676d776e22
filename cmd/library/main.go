// cmd/library/main.go
//
// Folio Library – HTTP entry point.  Serves books under /books, the wishlist, and the API docs.
//
// Start-up
// --------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Hand off to server.Run, which reads conf/library.yaml, starts the
//     rotating logger (teed to the console in a TTY), opens the store, and
//     serves until SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/yanizio/folio/internal/server"
)

const (
	appName       = "library"
	serverEnvPath = "/usr/local/etc/folio/library.env"
)

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a terminal.
func runningInTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, appName, server.Options{Tee: runningInTTY()}); err != nil {
		log.Fatalf("library: %v", err)
	}
}

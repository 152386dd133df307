package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dotpi/internal/app"
	"dotpi/internal/config"
	"dotpi/internal/logger"
	"dotpi/internal/mcptools"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	// zap writes to stderr; stdout carries the protocol
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	a, err := app.New(cfg, lg)
	if err != nil {
		lg.Fatal("failed to init app", "error", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dotpi-mcp",
		Version: "1.0.0",
	}, nil)
	mcptools.NewServer(a.Engine, a.Feedback, a.Preferences, lg.With("component", "mcp")).Register(server)

	lg.Info("starting MCP server on stdin/stdout", "tools", []string{"chat", "submit_feedback", "preferences"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport := mcp.NewStdioTransport()
	if err := server.Run(ctx, transport); err != nil && ctx.Err() == nil {
		lg.Fatal("MCP server failed", "error", err)
	}
}

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/bot"
	"github.com/avolkov/rigcat/telegram"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Catalog rigcat.CatalogService
	Handler *bot.Handler
	Bot     *telegram.Bot
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the Telegram bot"`
	Ingest  IngestCmd  `cmd:"" help:"Extract the snapshot and merge it into the catalog"`
	Stats   StatsCmd   `cmd:"" help:"Print catalog statistics"`
	Search  SearchCmd  `cmd:"" help:"Search stored configurations"`
	Analyze AnalyzeCmd `cmd:"" help:"Generate an AI analysis of the catalog"`
	Ask     AskCmd     `cmd:"" help:"Ask the AI a question about the catalog"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Component string `arg:"" optional:"" help:"Component breakdown: cpu, gpu or ram"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     []string `arg:"" help:"Search terms"`
	Component string   `short:"c" help:"Restrict to one component: cpu, gpu or ram"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the catalog"`
}

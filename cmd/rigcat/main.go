package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/avolkov/rigcat/bot"
	"github.com/avolkov/rigcat/config"
	"github.com/avolkov/rigcat/fs"
	"github.com/avolkov/rigcat/gemini"
	"github.com/avolkov/rigcat/goquery"
	rigslog "github.com/avolkov/rigcat/slog"
	"github.com/avolkov/rigcat/telegram"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Local development secrets live in .env; absence is fine.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rigcat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rigcat --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(m.ConfigPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	deps.Logger = logger
	deps.Catalog = rigslog.NewLoggingCatalogService(fs.NewCatalogStore(cfg.CatalogPath), logger)

	deps.Handler = &bot.Handler{
		Source:          fs.NewSnapshotSource(cfg.SnapshotPath),
		Extractor:       goquery.NewExtractor(),
		Catalog:         deps.Catalog,
		AnalysisTimeout: time.Duration(cfg.AnalysisTimeoutSecs) * time.Second,
		Logger:          logger,
	}

	if cmd == "ask" || cmd == "analyze" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		model := cfg.Model
		if model == "" {
			model = gemini.DefaultModel
		}
		deps.Handler.Analyst = gemini.NewAnalyst(client, model)
	}

	if cmd == "serve" {
		token := os.Getenv("TELEGRAM_BOT_TOKEN")
		if token == "" {
			fmt.Fprintln(stderr, "TELEGRAM_BOT_TOKEN environment variable not set. Create a bot with @BotFather to get one.")
			return fmt.Errorf("TELEGRAM_BOT_TOKEN not set")
		}
		deps.Bot = telegram.NewBot(token)
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("RIGCAT_CONFIG"); path != "" {
		return path
	}
	return config.DefaultPath
}

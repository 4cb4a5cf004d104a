// Package bot routes structured user intents to catalog operations and
// formats replies for a chat transport. It depends only on the domain
// interfaces, not on any specific chat protocol.
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/avolkov/rigcat"
)

// Action identifies a user intent selected from the menu.
type Action string

// Menu actions.
const (
	ActionMenu       Action = "menu"
	ActionOverview   Action = "overview"
	ActionPrices     Action = "prices"
	ActionCPUStats   Action = "cpu"
	ActionGPUStats   Action = "gpu"
	ActionRAMStats   Action = "ram"
	ActionSearchCPU  Action = "search_cpu"
	ActionSearchGPU  Action = "search_gpu"
	ActionSearchRAM  Action = "search_ram"
	ActionSearchFull Action = "search_full"
	ActionAllRigs    Action = "all"
	ActionAnalyze    Action = "analyze"
	ActionAsk        Action = "ask"
)

// topComponentLimit caps the cpu/gpu stat views, matching the menu's
// "top processors / top graphics cards" framing. RAM shows everything.
const topComponentLimit = 5

// overviewComponentLimit caps the component lists inside the overview.
const overviewComponentLimit = 3

// defaultAnalysisTimeout bounds external generation calls when the
// handler is not configured with an explicit timeout.
const defaultAnalysisTimeout = 60 * time.Second

// Option is one selectable navigation button.
type Option struct {
	Label  string
	Action Action
}

// Reply is the formatted outcome of handling an intent: display text,
// optional navigation options (rows of buttons), and optionally an action
// the transport should collect one free-text input for.
type Reply struct {
	Text    string
	Options [][]Option
	Await   Action
}

// Handler routes user intents to the catalog and analysis services.
type Handler struct {
	Source    rigcat.SourceLoader
	Extractor rigcat.Extractor
	Catalog   rigcat.CatalogService
	Analyst   rigcat.Analyst

	// AnalysisTimeout bounds Analyst calls; zero selects a default.
	AnalysisTimeout time.Duration

	// Logger is optional; nil falls back to slog.Default().
	Logger *slog.Logger
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Refresh runs the ingestion pipeline: load the snapshot, extract rigs,
// merge them into the catalog, and return the full catalog. Every failure
// short of a catalog write error degrades to serving the stored catalog.
func (h *Handler) Refresh(ctx context.Context) ([]rigcat.Rig, *rigcat.IngestResult, error) {
	ing := &rigcat.IngestResult{}

	html, err := h.Source.LoadHTML(ctx)
	if err != nil {
		h.logger().Warn("snapshot unavailable, serving stored catalog", "error", err)
		rigs, err := h.Catalog.Load(ctx)
		return rigs, ing, err
	}

	res, err := h.Extractor.Extract(html)
	if err != nil {
		h.logger().Warn("extraction failed, serving stored catalog", "error", err)
		rigs, err := h.Catalog.Load(ctx)
		return rigs, ing, err
	}
	if res.Skipped > 0 {
		h.logger().Warn("cards skipped during extraction",
			"parsed", res.Parsed,
			"skipped", res.Skipped,
			"last_error", res.LastErr,
		)
	}

	if len(res.Rigs) > 0 {
		ing, err = h.Catalog.Ingest(ctx, res.Rigs)
		if err != nil {
			h.logger().Warn("ingest failed, serving stored catalog", "error", err)
			ing = &rigcat.IngestResult{}
		}
	}

	rigs, err := h.Catalog.Load(ctx)
	return rigs, ing, err
}

// Menu returns the welcome reply with the main navigation grid.
func (h *Handler) Menu() *Reply {
	return &Reply{
		Text: "Computer catalog: statistics and search.\n\n" +
			"Pick an action:\n" +
			"- browse statistics\n" +
			"- search by component\n" +
			"- search by full configuration\n" +
			"- list all configurations",
		Options: [][]Option{
			{{Label: "Overview", Action: ActionOverview}, {Label: "Prices", Action: ActionPrices}},
			{{Label: "Processors", Action: ActionCPUStats}, {Label: "Graphics cards", Action: ActionGPUStats}},
			{{Label: "Search CPU", Action: ActionSearchCPU}, {Label: "Search GPU", Action: ActionSearchGPU}},
			{{Label: "Memory", Action: ActionRAMStats}, {Label: "Search RAM", Action: ActionSearchRAM}},
			{{Label: "Search full configuration", Action: ActionSearchFull}},
			{{Label: "All configurations", Action: ActionAllRigs}},
			{{Label: "AI analysis", Action: ActionAnalyze}},
			{{Label: "Ask AI", Action: ActionAsk}},
		},
	}
}

func backRow() [][]Option {
	return [][]Option{{{Label: "Back to menu", Action: ActionMenu}}}
}

// HandleAction handles a menu selection. Prompting actions return a reply
// with Await set; the transport collects one free-text input and routes it
// to the matching Handle* method.
func (h *Handler) HandleAction(ctx context.Context, action Action) (*Reply, error) {
	switch action {
	case ActionMenu:
		return h.Menu(), nil

	case ActionSearchCPU, ActionSearchGPU, ActionSearchRAM:
		return &Reply{
			Text:  "Enter a search query (minimum 2 characters):",
			Await: action,
		}, nil

	case ActionSearchFull:
		return &Reply{
			Text:  "Describe the configuration, e.g.: i5-12400F RTX 4060 16GB",
			Await: action,
		}, nil

	case ActionAsk:
		return &Reply{
			Text: "Ask a question about the catalog, for example:\n" +
				"- Which configurations suit gaming best?\n" +
				"- What separates the listed graphics cards?\n" +
				"- Which price/performance ratio is optimal?",
			Await: action,
		}, nil
	}

	rigs, _, err := h.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if len(rigs) == 0 {
		return &Reply{Text: "The catalog is empty.", Options: backRow()}, nil
	}

	switch action {
	case ActionOverview:
		text := rigcat.FormatOverview(rigcat.Overview(rigs)) + "\n" +
			rigcat.FormatComponentCounts("Top processors", rigcat.CountComponents(rigs, rigcat.ComponentCPU), overviewComponentLimit) + "\n" +
			rigcat.FormatComponentCounts("Top graphics cards", rigcat.CountComponents(rigs, rigcat.ComponentGPU), overviewComponentLimit)
		return &Reply{Text: text, Options: backRow()}, nil
	case ActionPrices:
		return &Reply{Text: rigcat.FormatPriceSummary(rigcat.SummarizePrices(rigs)), Options: backRow()}, nil
	case ActionCPUStats:
		counts := rigcat.CountComponents(rigs, rigcat.ComponentCPU)
		return &Reply{Text: rigcat.FormatComponentCounts("Top processors", counts, topComponentLimit), Options: backRow()}, nil
	case ActionGPUStats:
		counts := rigcat.CountComponents(rigs, rigcat.ComponentGPU)
		return &Reply{Text: rigcat.FormatComponentCounts("Top graphics cards", counts, topComponentLimit), Options: backRow()}, nil
	case ActionRAMStats:
		counts := rigcat.CountComponents(rigs, rigcat.ComponentRAM)
		return &Reply{Text: rigcat.FormatComponentCounts("Memory breakdown", counts, 0), Options: backRow()}, nil
	case ActionAllRigs:
		return &Reply{Text: rigcat.FormatRigs(rigs), Options: backRow()}, nil
	case ActionAnalyze:
		return h.analyze(ctx, rigs)
	}

	return nil, rigcat.Errorf(rigcat.ENOTFOUND, "unknown action %q", action)
}

// HandleFieldSearch handles a single-component search query.
func (h *Handler) HandleFieldSearch(ctx context.Context, c rigcat.Component, query string) (*Reply, error) {
	if !c.Valid() {
		return nil, rigcat.Errorf(rigcat.EINVALID, "unknown component %q", c)
	}
	if len([]rune(query)) < 2 {
		return nil, rigcat.Errorf(rigcat.EINVALID, "Search query too short: minimum 2 characters.")
	}

	rigs, _, err := h.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	results := rigcat.SearchByField(rigs, c, query)
	return &Reply{Text: rigcat.FormatRigs(results), Options: backRow()}, nil
}

// HandleConfigSearch handles a free-text full-configuration search.
func (h *Handler) HandleConfigSearch(ctx context.Context, query string) (*Reply, error) {
	if len([]rune(query)) < 3 {
		return nil, rigcat.Errorf(rigcat.EINVALID, "Search query too short: describe the configuration in more detail.")
	}

	rigs, _, err := h.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	results := rigcat.SearchByFullConfig(rigs, query)
	return &Reply{Text: rigcat.FormatRigs(results), Options: backRow()}, nil
}

// HandleQuestion handles a free-text question for the analysis service.
func (h *Handler) HandleQuestion(ctx context.Context, question string) (*Reply, error) {
	if len([]rune(question)) < 5 {
		return nil, rigcat.Errorf(rigcat.EINVALID, "Question too short: describe what you want to know.")
	}

	rigs, _, err := h.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if len(rigs) == 0 {
		return &Reply{Text: "The catalog is empty.", Options: backRow()}, nil
	}

	ctx, cancel := h.analysisContext(ctx)
	defer cancel()

	answer, err := h.Analyst.Answer(ctx, rigcat.Summarize(rigs), question)
	if err != nil {
		return nil, err
	}
	return &Reply{Text: answer, Options: backRow()}, nil
}

func (h *Handler) analyze(ctx context.Context, rigs []rigcat.Rig) (*Reply, error) {
	ctx, cancel := h.analysisContext(ctx)
	defer cancel()

	analysis, err := h.Analyst.Analyze(ctx, rigcat.Summarize(rigs))
	if err != nil {
		return nil, err
	}
	return &Reply{Text: analysis, Options: backRow()}, nil
}

func (h *Handler) analysisContext(ctx context.Context) (context.Context, context.CancelFunc) {
	d := h.AnalysisTimeout
	if d <= 0 {
		d = defaultAnalysisTimeout
	}
	return context.WithTimeout(ctx, d)
}

package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/bot"
	"github.com/avolkov/rigcat/mock"
	"github.com/avolkov/rigcat/telegram"
)

// apiCall is one recorded Bot API request.
type apiCall struct {
	Method string
	Body   map[string]any
}

// fakeAPI is an in-process Telegram Bot API. It records every call and
// serves queued getUpdates batches, then empty batches.
type fakeAPI struct {
	t *testing.T

	mu      sync.Mutex
	calls   []apiCall
	updates [][]telegram.Update

	srv *httptest.Server
}

func newFakeAPI(t *testing.T, updates ...[]telegram.Update) *fakeAPI {
	t.Helper()

	f := &fakeAPI{t: t, updates: updates}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) newBot() *telegram.Bot {
	return telegram.NewBot("TEST-TOKEN",
		telegram.WithBaseURL(f.srv.URL+"/bot"),
		telegram.WithHTTPClient(f.srv.Client()),
	)
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]

	raw, err := io.ReadAll(r.Body)
	if !assert.NoError(f.t, err) {
		return
	}
	var body map[string]any
	if !assert.NoError(f.t, json.Unmarshal(raw, &body)) {
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Body: body})
	var batch []telegram.Update
	if method == "getUpdates" && len(f.updates) > 0 {
		batch = f.updates[0]
		f.updates = f.updates[1:]
	}
	callCount := len(f.calls)
	f.mu.Unlock()

	var result any
	switch method {
	case "getUpdates":
		if batch == nil {
			batch = []telegram.Update{}
		}
		result = batch
	case "sendMessage":
		result = telegram.Message{MessageID: int64(callCount), Chat: telegram.Chat{ID: 1}}
	default:
		result = true
	}

	w.Header().Set("Content-Type", "application/json")
	assert.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"result": result,
	}))
}

func (f *fakeAPI) callsFor(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func TestBot_SendMessage(t *testing.T) {
	t.Parallel()

	t.Run("SplitsLongTextAndAttachesMarkupLast", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		b := api.newBot()

		text := strings.Repeat("a", 4000) + ". " + strings.Repeat("b", 500)
		markup := &telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{
				{{Text: "Back to menu", CallbackData: "menu"}},
			},
		}
		_, err := b.SendMessage(context.Background(), 42, text, markup)
		require.NoError(t, err)

		sends := api.callsFor("sendMessage")
		require.Len(t, sends, 2)
		assert.Nil(t, sends[0].Body["reply_markup"])
		assert.NotNil(t, sends[1].Body["reply_markup"])
		assert.Equal(t, float64(42), sends[0].Body["chat_id"])
	})

	t.Run("ReportsAPIErrors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked"}`))
		}))
		defer srv.Close()

		b := telegram.NewBot("TEST-TOKEN",
			telegram.WithBaseURL(srv.URL+"/bot"),
			telegram.WithHTTPClient(srv.Client()),
		)
		_, err := b.SendMessage(context.Background(), 42, "hi", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Forbidden: bot was blocked")
	})
}

func TestBot_EditMessage(t *testing.T) {
	t.Parallel()

	t.Run("IgnoresNotModified", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`))
		}))
		defer srv.Close()

		b := telegram.NewBot("TEST-TOKEN",
			telegram.WithBaseURL(srv.URL+"/bot"),
			telegram.WithHTTPClient(srv.Client()),
		)
		err := b.EditMessage(context.Background(), 42, 7, "same text", nil)
		assert.NoError(t, err)
	})
}

// runRunner drives a Runner against queued updates until cond holds.
func runRunner(t *testing.T, api *fakeAPI, h *bot.Handler, cond func() bool) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := telegram.NewRunner(api.newBot(), h, logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()

	require.Eventually(t, cond, 5*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

// staticHandler is a handler whose refresh pipeline serves fixed rigs.
func staticHandler(rigs []rigcat.Rig) *bot.Handler {
	return &bot.Handler{
		Source: &mock.SourceLoader{
			LoadHTMLFn: func(ctx context.Context) (string, error) {
				return "", rigcat.Errorf(rigcat.EUNAVAILABLE, "no snapshot")
			},
		},
		Extractor: &mock.Extractor{},
		Catalog: &mock.CatalogService{
			LoadFn: func(ctx context.Context) ([]rigcat.Rig, error) { return rigs, nil },
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRunner(t *testing.T) {
	t.Parallel()

	rigs := []rigcat.Rig{
		{CPU: "Intel Core i5-12400F", GPU: "RTX 4060", RAM: "16GB DDR4", Price: "50000 ₽"},
	}

	t.Run("FreeTextBringsUpMenu", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t, []telegram.Update{
			{UpdateID: 1, Message: &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: 1}, Text: "hello"}},
		})
		runRunner(t, api, staticHandler(rigs), func() bool {
			return len(api.callsFor("sendMessage")) >= 1
		})

		sends := api.callsFor("sendMessage")
		require.NotEmpty(t, sends)
		assert.Contains(t, sends[0].Body["text"], "Computer catalog")
		assert.NotNil(t, sends[0].Body["reply_markup"], "menu carries the navigation keyboard")
	})

	t.Run("CallbackEditsMenuInPlace", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t, []telegram.Update{
			{UpdateID: 1, CallbackQuery: &telegram.CallbackQuery{
				ID:      "cb1",
				Data:    string(bot.ActionOverview),
				Message: &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: 1}},
			}},
		})
		runRunner(t, api, staticHandler(rigs), func() bool {
			return len(api.callsFor("editMessageText")) >= 1 && len(api.callsFor("answerCallbackQuery")) >= 1
		})

		edits := api.callsFor("editMessageText")
		require.NotEmpty(t, edits)
		assert.Contains(t, edits[0].Body["text"], "Catalog overview")
		assert.Equal(t, float64(10), edits[0].Body["message_id"])
	})

	t.Run("PromptCollectsInputForSearch", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t,
			[]telegram.Update{
				{UpdateID: 1, CallbackQuery: &telegram.CallbackQuery{
					ID:      "cb1",
					Data:    string(bot.ActionSearchCPU),
					Message: &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: 1}},
				}},
			},
			[]telegram.Update{
				{UpdateID: 2, Message: &telegram.Message{MessageID: 11, Chat: telegram.Chat{ID: 1}, Text: "i5"}},
			},
		)
		runRunner(t, api, staticHandler(rigs), func() bool {
			return len(api.callsFor("sendMessage")) >= 2
		})

		sends := api.callsFor("sendMessage")
		require.GreaterOrEqual(t, len(sends), 2)
		assert.Contains(t, sends[0].Body["text"], "Enter a search query")
		assert.NotNil(t, sends[0].Body["reply_markup"], "prompt requests a forced reply")
		assert.Contains(t, sends[1].Body["text"], "Intel Core i5-12400F")
	})

	t.Run("RejectedInputReportsErrorMessage", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t,
			[]telegram.Update{
				{UpdateID: 1, CallbackQuery: &telegram.CallbackQuery{
					ID:      "cb1",
					Data:    string(bot.ActionSearchCPU),
					Message: &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: 1}},
				}},
			},
			[]telegram.Update{
				{UpdateID: 2, Message: &telegram.Message{MessageID: 11, Chat: telegram.Chat{ID: 1}, Text: "i"}},
			},
		)
		runRunner(t, api, staticHandler(rigs), func() bool {
			return len(api.callsFor("sendMessage")) >= 2
		})

		sends := api.callsFor("sendMessage")
		require.GreaterOrEqual(t, len(sends), 2)
		assert.Contains(t, sends[1].Body["text"], "Search query too short")
	})
}

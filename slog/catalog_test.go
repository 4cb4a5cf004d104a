package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/mock"
	rigslog "github.com/avolkov/rigcat/slog"
)

func TestLoggingCatalogService_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.CatalogService{
			LoadFn: func(ctx context.Context) ([]rigcat.Rig, error) {
				return []rigcat.Rig{{CPU: "i5"}, {CPU: "i7"}}, nil
			},
		}

		svc := rigslog.NewLoggingCatalogService(inner, logger)
		rigs, err := svc.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, rigs, 2)
		output := buf.String()
		assert.Contains(t, output, "catalog load")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.CatalogService{
			LoadFn: func(ctx context.Context) ([]rigcat.Rig, error) {
				return nil, errors.New("disk error")
			},
		}

		svc := rigslog.NewLoggingCatalogService(inner, logger)
		_, err := svc.Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk error\"")
	})
}

func TestLoggingCatalogService_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("logs appended and duplicates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			IngestFn: func(ctx context.Context, rigs []rigcat.Rig) (*rigcat.IngestResult, error) {
				return &rigcat.IngestResult{Appended: 3, Duplicates: 1}, nil
			},
		}

		svc := rigslog.NewLoggingCatalogService(inner, logger)
		res, err := svc.Ingest(context.Background(), make([]rigcat.Rig, 4))

		require.NoError(t, err)
		assert.Equal(t, 3, res.Appended)
		output := buf.String()
		assert.Contains(t, output, "catalog ingest")
		assert.Contains(t, output, "batch=4")
		assert.Contains(t, output, "appended=3")
		assert.Contains(t, output, "duplicates=1")
	})

	t.Run("tolerates nil result on error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			IngestFn: func(ctx context.Context, rigs []rigcat.Rig) (*rigcat.IngestResult, error) {
				return nil, errors.New("write error")
			},
		}

		svc := rigslog.NewLoggingCatalogService(inner, logger)
		_, err := svc.Ingest(context.Background(), nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "appended=0")
		assert.Contains(t, output, "err=\"write error\"")
	})
}

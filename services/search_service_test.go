package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"parley/domain"
	"parley/domain/search"
)

func newSearchService(t *testing.T) *SearchService {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writer.Close()
	})
	return NewSearchService(writer, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestSearchService_IndexAndSearch(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newSearchService(t)

	author := domain.Identity{Login: "alice", Name: "Alice"}
	req.NoError(svc.Index(1, domain.Message{Author: author, Text: "the invoice is overdue", ID: 1}))
	req.NoError(svc.Index(1, domain.Message{Author: author, Text: "lunch anyone", ID: 2}))
	req.NoError(svc.Index(2, domain.Message{Author: author, Text: "new invoice received", ID: 1}))

	t.Run("matches across rooms", func(t *testing.T) {
		results, err := svc.Search(ctx, search.NewQuery("invoice"))
		req.NoError(err)
		req.Len(results, 2)
	})

	t.Run("room filter narrows results", func(t *testing.T) {
		results, err := svc.Search(ctx, search.NewQuery("invoice --room 2"))
		req.NoError(err)
		req.Len(results, 1)
		req.Equal(2, results[0].RoomID)
		req.Equal(1, results[0].MessageID)
		req.Equal("alice", results[0].Author)
		req.Equal("new invoice received", results[0].Text)
	})

	t.Run("no terms yields no results", func(t *testing.T) {
		results, err := svc.Search(ctx, search.NewQuery("--room 1"))
		req.NoError(err)
		req.Empty(results)
	})

	t.Run("limit caps results", func(t *testing.T) {
		results, err := svc.Search(ctx, search.NewQuery("invoice --limit 1"))
		req.NoError(err)
		req.Len(results, 1)
	})
}

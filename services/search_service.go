package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"parley/domain"
	"parley/domain/search"
)

// SearchService maintains a full-text index over posted messages.
// The index lives in memory only, like everything else here.
type SearchService struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// Result is a single search hit.
type Result struct {
	RoomID    int
	MessageID int
	Author    string
	Text      string
}

func NewSearchService(writer *bluge.Writer, log *slog.Logger) *SearchService {
	return &SearchService{writer: writer, log: log}
}

// Index adds a stored message to the index. The document key is
// room-scoped so ids from different rooms never collide.
func (s *SearchService) Index(roomID domain.RoomID, m domain.Message) error {
	key := fmt.Sprintf("msg:%d:%d", roomID, m.ID)
	doc := bluge.NewDocument(key).
		AddField(bluge.NewTextField("text", m.Text).StoreValue()).
		AddField(bluge.NewKeywordField("room", strconv.Itoa(int(roomID))).StoreValue()).
		AddField(bluge.NewKeywordField("author", m.Author.Login).StoreValue()).
		AddField(bluge.NewKeywordField("lang", m.Lang)).
		AddField(bluge.NewNumericField("id", float64(m.ID)).StoreValue())

	return s.writer.Update(doc.ID(), doc)
}

// Search runs a parsed query against the index and returns matching
// messages, best score first.
func (s *SearchService) Search(ctx context.Context, q *search.Query) ([]Result, error) {
	if q.Terms == "" {
		return []Result{}, nil
	}

	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("index reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(q.Terms).SetField("text"))
	if q.RoomID > 0 {
		query.AddMust(bluge.NewTermQuery(strconv.Itoa(q.RoomID)).SetField("room"))
	}

	request := bluge.NewTopNSearch(q.Limit, query)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	results := []Result{}
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("index iteration: %w", err)
		}
		if match == nil {
			break
		}

		var r Result
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "text":
				r.Text = string(value)
			case "author":
				r.Author = string(value)
			case "room":
				r.RoomID, _ = strconv.Atoi(string(value))
			case "id":
				if n, err := bluge.DecodeNumericFloat64(value); err == nil {
					r.MessageID = int(n)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	s.log.Debug("Search executed", "terms", q.Terms, "room", q.RoomID, "hits", len(results))
	return results, nil
}

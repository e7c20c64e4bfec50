package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/search"
	"github.com/Skotchmaster/marketplace/internal/util"
)

type ItemFinder interface {
	SearchItems(ctx context.Context, q string, offset, limit int) (int64, []models.Item, error)
}

// SearchService queries the search index and falls back to the database
// when the index is missing or failing.
type SearchService struct {
	Index    search.Index
	Fallback ItemFinder
}

type SearchResults struct {
	Total int64
	Page  int
	Size  int
	Items []models.Item
}

func (s *SearchService) Search(ctx context.Context, rawQ string, page, size int) (*SearchResults, error) {
	q := strings.TrimSpace(rawQ)
	if q == "" {
		return nil, newError(ErrInvalidInput, "Query is required")
	}
	if page < 1 {
		page = 1
	}
	from, limit := util.Calculate(page, size)
	res := &SearchResults{Page: page, Size: limit}

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, from, limit)
		if err == nil {
			res.Total, res.Items = total, items
			return res.normalize(), nil
		}
		if s.Fallback == nil {
			return nil, err
		}
		logging.FromContext(ctx).Warn("search_index_error", "error", err)
	}

	total, items, err := s.Fallback.SearchItems(ctx, q, from, limit)
	if err != nil {
		return nil, err
	}
	res.Total, res.Items = total, items
	return res.normalize(), nil
}

func (r *SearchResults) normalize() *SearchResults {
	if r.Items == nil {
		r.Items = []models.Item{}
	}
	return r
}

package data

import (
	"context"
	"strings"

	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/pkg/util"
)

// SearchResult is one page of ranked part matches.
type SearchResult struct {
	Items []domain.Part `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// SearchParts ranks active parts in three tiers: code starts with the
// query, description starts with the query, then either contains it. Later
// tiers are de-duplicated against earlier ones and the concatenation is
// paginated. Matching is case- and diacritic-insensitive.
func (m *Manager) SearchParts(ctx context.Context, query string, page, limit int) SearchResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var active []domain.Part
	for _, part := range m.Parts(ctx) {
		if part.Ativo {
			active = append(active, part)
		}
	}

	q := util.Fold(strings.TrimSpace(query))
	ranked := active
	if q != "" {
		ranked = rankParts(active, q)
	}

	total := len(ranked)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return SearchResult{Items: ranked[start:end], Total: total, Page: page, Limit: limit}
}

func rankParts(parts []domain.Part, q string) []domain.Part {
	seen := make(map[string]struct{}, len(parts))
	ranked := make([]domain.Part, 0, len(parts))

	appendTier := func(match func(codigo, descricao string) bool) {
		for _, part := range parts {
			if _, dup := seen[part.ID]; dup {
				continue
			}
			if match(util.Fold(part.Codigo), util.Fold(part.Descricao)) {
				seen[part.ID] = struct{}{}
				ranked = append(ranked, part)
			}
		}
	}

	appendTier(func(codigo, _ string) bool { return strings.HasPrefix(codigo, q) })
	appendTier(func(_, descricao string) bool { return strings.HasPrefix(descricao, q) })
	appendTier(func(codigo, descricao string) bool {
		return strings.Contains(codigo, q) || strings.Contains(descricao, q)
	})

	return ranked
}

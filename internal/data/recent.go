package data

import (
	"context"

	"github.com/spec-kit/requisition-service/internal/domain"
)

// How many recent part codes are remembered per technician.
const recentPartsLimit = 20

// RecentParts returns the most recently requested part codes for a
// technician, newest first.
func (m *Manager) RecentParts(ctx context.Context, tecnicoID string) []string {
	recent := map[string][]string{}
	m.loadCollection(ctx, KeyRecentParts, &recent)
	return recent[tecnicoID]
}

// recordRecentParts moves the solicitation's part codes to the front of the
// technician's recent list, capped at recentPartsLimit.
func (m *Manager) recordRecentParts(ctx context.Context, sol *domain.Solicitation) {
	if sol.TecnicoID == "" || len(sol.Itens) == 0 {
		return
	}

	recent := map[string][]string{}
	m.loadCollection(ctx, KeyRecentParts, &recent)

	codes := make([]string, 0, len(sol.Itens))
	seen := make(map[string]struct{})
	for _, item := range sol.Itens {
		if item.Codigo == "" {
			continue
		}
		if _, dup := seen[item.Codigo]; dup {
			continue
		}
		seen[item.Codigo] = struct{}{}
		codes = append(codes, item.Codigo)
	}

	for _, code := range recent[sol.TecnicoID] {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if len(codes) > recentPartsLimit {
		codes = codes[:recentPartsLimit]
	}
	recent[sol.TecnicoID] = codes

	m.saveCollection(ctx, KeyRecentParts, recent)
}

package data

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/pkg/util"
)

// Solicitations returns all part requests.
func (m *Manager) Solicitations(ctx context.Context) []domain.Solicitation {
	var solicitations []domain.Solicitation
	m.loadCollection(ctx, KeySolicitations, &solicitations)
	return solicitations
}

// SolicitationByID returns the request with the given id.
func (m *Manager) SolicitationByID(ctx context.Context, id string) (*domain.Solicitation, bool) {
	for _, sol := range m.Solicitations(ctx) {
		if sol.ID == id {
			s := sol
			return &s, true
		}
	}
	return nil, false
}

// SaveSolicitation inserts or replaces a request. First insert assigns the
// id, creation time and the day-scoped sequential number; an existing
// Numero is never regenerated or mutated.
func (m *Manager) SaveSolicitation(ctx context.Context, sol *domain.Solicitation) error {
	if sol.TecnicoID == "" {
		return util.NewValidationError("técnico obrigatório", nil)
	}

	solicitations := m.Solicitations(ctx)

	if sol.ID == "" {
		sol.ID = uuid.NewString()
		if sol.CreatedAt.IsZero() {
			sol.CreatedAt = time.Now()
		}
		if sol.Numero == "" {
			existing := make([]string, 0, len(solicitations))
			for _, s := range solicitations {
				existing = append(existing, s.Numero)
			}
			sol.Numero = GenerateNumber(existing, referenceDate(sol))
		}
		solicitations = append(solicitations, *sol)
	} else {
		replaced := false
		for i := range solicitations {
			if solicitations[i].ID == sol.ID {
				// Numero survives every edit.
				sol.Numero = solicitations[i].Numero
				solicitations[i] = *sol
				replaced = true
				break
			}
		}
		if !replaced {
			solicitations = append(solicitations, *sol)
		}
	}

	m.saveCollection(ctx, KeySolicitations, solicitations)
	m.recordRecentParts(ctx, sol)
	return nil
}

// DeleteSolicitation removes the request with the given id.
func (m *Manager) DeleteSolicitation(ctx context.Context, id string) bool {
	solicitations := m.Solicitations(ctx)
	for i := range solicitations {
		if solicitations[i].ID == id {
			solicitations = append(solicitations[:i], solicitations[i+1:]...)
			m.saveCollection(ctx, KeySolicitations, solicitations)
			return true
		}
	}
	return false
}

// referenceDate resolves the date the request number is scoped to: the
// declared request date when parseable, otherwise the creation time.
func referenceDate(sol *domain.Solicitation) time.Time {
	if sol.Data != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", sol.Data, time.Local); err == nil {
			return parsed
		}
	}
	if !sol.CreatedAt.IsZero() {
		return sol.CreatedAt
	}
	return time.Now()
}

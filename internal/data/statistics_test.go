package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/requisition-service/internal/domain"
)

// TestStatistics_Counts verifies status tallies and pending value over a
// small mixed set.
func TestStatistics_Counts(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	today := time.Now().Format("2006-01-02")

	m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{
		{ID: "s-1", TecnicoID: "t-1", TecnicoNome: "Ana", Data: today, Status: domain.StatusPendente, Total: 100},
		{ID: "s-2", TecnicoID: "t-1", TecnicoNome: "Ana", Data: today, Status: domain.StatusAprovada, Total: 200},
		{ID: "s-3", TecnicoID: "t-2", TecnicoNome: "Bruno", Data: today, Status: domain.StatusRejeitada, Total: 50},
	})

	stats := m.Statistics(ctx)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.ByStatus["pendente"])
	assert.Equal(t, 1, stats.ByStatus["aprovada"])
	assert.Equal(t, 1, stats.ByStatus["rejeitada"])
	assert.Equal(t, 100.0, stats.PendingValue)
}

// TestStatistics_AvgApprovalHours verifies the creation-to-approval latency
// average, rounded to one decimal.
func TestStatistics_AvgApprovalHours(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	created := time.Now().Add(-24 * time.Hour)
	approvedFast := created.Add(2 * time.Hour)
	approvedSlow := created.Add(5 * time.Hour)

	m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{
		{ID: "s-1", TecnicoID: "t-1", Status: domain.StatusAprovada, CreatedAt: created, ApprovedAt: &approvedFast},
		{ID: "s-2", TecnicoID: "t-1", Status: domain.StatusAprovada, CreatedAt: created, ApprovedAt: &approvedSlow},
		{ID: "s-3", TecnicoID: "t-1", Status: domain.StatusPendente, CreatedAt: created},
	})

	stats := m.Statistics(ctx)
	assert.InDelta(t, 3.5, stats.AvgApprovalHours, 0.01)
}

// TestStatistics_TimeBuckets verifies the fixed-length daily and monthly
// series, including empty buckets.
func TestStatistics_TimeBuckets(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	now := time.Now()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{
		{ID: "s-1", TecnicoID: "t-1", Data: today, Status: domain.StatusPendente},
		{ID: "s-2", TecnicoID: "t-1", Data: today, Status: domain.StatusPendente},
		{ID: "s-3", TecnicoID: "t-1", Data: yesterday, Status: domain.StatusPendente},
		{ID: "s-4", TecnicoID: "t-1", Data: "data-invalida", Status: domain.StatusPendente},
	})

	stats := m.Statistics(ctx)

	require.Len(t, stats.Last7Days, 7)
	require.Len(t, stats.Last6Months, 6)

	last := stats.Last7Days[6]
	assert.Equal(t, today, last.Label)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 1, stats.Last7Days[5].Count)
	assert.Equal(t, 0, stats.Last7Days[0].Count)
}

// TestStatistics_TopParts verifies quantity ordering with a code tie-break
// and the top-10 cut.
func TestStatistics_TopParts(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	today := time.Now().Format("2006-01-02")

	m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{
		{ID: "s-1", TecnicoID: "t-1", Data: today, Status: domain.StatusPendente, Itens: []domain.SolicitationItem{
			{Codigo: "CB001", Descricao: "Cabo", Quantidade: 3},
			{Codigo: "FT001", Descricao: "Fonte", Quantidade: 5},
		}},
		{ID: "s-2", TecnicoID: "t-1", Data: today, Status: domain.StatusPendente, Itens: []domain.SolicitationItem{
			{Codigo: "CB001", Descricao: "Cabo", Quantidade: 2},
			{Codigo: "AA001", Descricao: "Empate", Quantidade: 5},
		}},
	})

	stats := m.Statistics(ctx)

	require.Len(t, stats.TopParts, 3)
	assert.Equal(t, "AA001", stats.TopParts[0].Codigo)
	assert.Equal(t, "CB001", stats.TopParts[1].Codigo)
	assert.Equal(t, 5.0, stats.TopParts[1].Quantidade)
	assert.Equal(t, "FT001", stats.TopParts[2].Codigo)
}

// TestStatistics_ByTechnician verifies the delivery chain counts as
// approved and values accumulate per technician.
func TestStatistics_ByTechnician(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	today := time.Now().Format("2006-01-02")

	m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{
		{ID: "s-1", TecnicoID: "t-1", TecnicoNome: "Ana", Data: today, Status: domain.StatusAprovada, Total: 100},
		{ID: "s-2", TecnicoID: "t-1", TecnicoNome: "Ana", Data: today, Status: domain.StatusEntregue, Total: 50},
		{ID: "s-3", TecnicoID: "t-1", TecnicoNome: "Ana", Data: today, Status: domain.StatusPendente, Total: 30},
		{ID: "s-4", TecnicoID: "t-2", TecnicoNome: "Bruno", Data: today, Status: domain.StatusRejeitada, Total: 80},
	})

	stats := m.Statistics(ctx)
	require.Len(t, stats.ByTechnician, 2)

	ana := stats.ByTechnician[0]
	assert.Equal(t, "Ana", ana.TecnicoNome)
	assert.Equal(t, 2, ana.Approved)
	assert.Equal(t, 1, ana.Pending)
	assert.Equal(t, 150.0, ana.ApprovedValue)
	assert.Equal(t, 30.0, ana.PendingValue)
	assert.Equal(t, 180.0, ana.TotalValue)

	bruno := stats.ByTechnician[1]
	assert.Equal(t, 1, bruno.Rejected)
	assert.Equal(t, 80.0, bruno.TotalValue)
}

// TestStatistics_Empty verifies the zero-data shape still carries full
// bucket series.
func TestStatistics_Empty(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	stats := m.Statistics(ctx)
	assert.Zero(t, stats.Total)
	assert.Len(t, stats.Last7Days, 7)
	assert.Len(t, stats.Last6Months, 6)
	assert.Zero(t, stats.AvgApprovalHours)
}

package data

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/spec-kit/requisition-service/internal/domain"
)

// VolumePoint is one bucket of request volume.
type VolumePoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PartVolume is the summed requested quantity for one part code.
type PartVolume struct {
	Codigo     string  `json:"codigo"`
	Descricao  string  `json:"descricao"`
	Quantidade float64 `json:"quantidade"`
}

// TechnicianStats aggregates one technician's requests.
type TechnicianStats struct {
	TecnicoID     string  `json:"tecnicoId"`
	TecnicoNome   string  `json:"tecnicoNome"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	Pending       int     `json:"pending"`
	ApprovedValue float64 `json:"approvedValue"`
	PendingValue  float64 `json:"pendingValue"`
	TotalValue    float64 `json:"totalValue"`
}

// Statistics is the dashboard/report aggregation over all solicitations.
type Statistics struct {
	Total            int               `json:"total"`
	ByStatus         map[string]int    `json:"byStatus"`
	Pending          int               `json:"pending"`
	Approved         int               `json:"approved"`
	Rejected         int               `json:"rejected"`
	AvgApprovalHours float64           `json:"avgApprovalHours"`
	Last7Days        []VolumePoint     `json:"last7Days"`
	Last6Months      []VolumePoint     `json:"last6Months"`
	TopParts         []PartVolume      `json:"topParts"`
	ByTechnician     []TechnicianStats `json:"byTechnician"`
	PendingValue     float64           `json:"pendingValue"`
}

// Statistics computes the full aggregation. Records with missing or
// unparseable dates contribute nothing to the time-bucketed series.
func (m *Manager) Statistics(ctx context.Context) Statistics {
	solicitations := m.Solicitations(ctx)
	now := time.Now()

	stats := Statistics{
		Total:    len(solicitations),
		ByStatus: make(map[string]int),
	}

	dayCounts := make(map[string]int)
	monthCounts := make(map[string]int)
	partVolumes := make(map[string]*PartVolume)
	techStats := make(map[string]*TechnicianStats)

	var latencySum float64
	var latencyCount int

	for _, sol := range solicitations {
		stats.ByStatus[string(sol.Status)]++

		if sol.Status == domain.StatusPendente {
			stats.PendingValue += sol.Total
		}

		if sol.ApprovedAt != nil && !sol.CreatedAt.IsZero() {
			hours := sol.ApprovedAt.Sub(sol.CreatedAt).Hours()
			if hours >= 0 {
				latencySum += hours
				latencyCount++
			}
		}

		if ref, ok := solicitationDate(sol); ok {
			dayCounts[ref.Format("2006-01-02")]++
			monthCounts[ref.Format("2006-01")]++
		}

		for _, item := range sol.Itens {
			if item.Codigo == "" {
				continue
			}
			volume, ok := partVolumes[item.Codigo]
			if !ok {
				volume = &PartVolume{Codigo: item.Codigo, Descricao: item.Descricao}
				partVolumes[item.Codigo] = volume
			}
			volume.Quantidade += item.Quantidade
		}

		if sol.TecnicoID != "" {
			tech, ok := techStats[sol.TecnicoID]
			if !ok {
				tech = &TechnicianStats{TecnicoID: sol.TecnicoID, TecnicoNome: sol.TecnicoNome}
				techStats[sol.TecnicoID] = tech
			}
			tech.TotalValue += sol.Total
			switch sol.Status {
			case domain.StatusAprovada, domain.StatusEmTransito, domain.StatusEntregue, domain.StatusFinalizada:
				tech.Approved++
				tech.ApprovedValue += sol.Total
			case domain.StatusRejeitada:
				tech.Rejected++
			case domain.StatusPendente:
				tech.Pending++
				tech.PendingValue += sol.Total
			}
		}
	}

	stats.Pending = stats.ByStatus[string(domain.StatusPendente)]
	stats.Approved = stats.ByStatus[string(domain.StatusAprovada)]
	stats.Rejected = stats.ByStatus[string(domain.StatusRejeitada)]

	if latencyCount > 0 {
		stats.AvgApprovalHours = math.Round(latencySum/float64(latencyCount)*10) / 10
	}

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		label := day.Format("2006-01-02")
		stats.Last7Days = append(stats.Last7Days, VolumePoint{Label: label, Count: dayCounts[label]})
	}
	for i := 5; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		label := month.Format("2006-01")
		stats.Last6Months = append(stats.Last6Months, VolumePoint{Label: label, Count: monthCounts[label]})
	}

	for _, volume := range partVolumes {
		stats.TopParts = append(stats.TopParts, *volume)
	}
	sort.Slice(stats.TopParts, func(i, j int) bool {
		if stats.TopParts[i].Quantidade != stats.TopParts[j].Quantidade {
			return stats.TopParts[i].Quantidade > stats.TopParts[j].Quantidade
		}
		return stats.TopParts[i].Codigo < stats.TopParts[j].Codigo
	})
	if len(stats.TopParts) > 10 {
		stats.TopParts = stats.TopParts[:10]
	}

	for _, tech := range techStats {
		stats.ByTechnician = append(stats.ByTechnician, *tech)
	}
	sort.Slice(stats.ByTechnician, func(i, j int) bool {
		return stats.ByTechnician[i].TecnicoNome < stats.ByTechnician[j].TecnicoNome
	})

	return stats
}

// solicitationDate resolves the time bucket for a request: the declared
// request date when parseable, otherwise the creation time, otherwise none.
func solicitationDate(sol domain.Solicitation) (time.Time, bool) {
	if sol.Data != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", sol.Data, time.Local); err == nil {
			return parsed, true
		}
	}
	if !sol.CreatedAt.IsZero() {
		return sol.CreatedAt, true
	}
	return time.Time{}, false
}

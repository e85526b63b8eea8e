package dto

import "github.com/spec-kit/requisition-service/internal/domain"

// SolicitationRequest payload for creating or updating a request.
type SolicitationRequest struct {
	TecnicoID   string                    `json:"tecnicoId"`
	TecnicoNome string                    `json:"tecnicoNome"`
	Data        string                    `json:"data"`
	Itens       []domain.SolicitationItem `json:"itens"`
	Desconto    float64                   `json:"desconto"`
	Frete       float64                   `json:"frete"`
	Status      domain.SolicitationStatus `json:"status,omitempty"`
}

// StatusChangeRequest payload for a status transition.
type StatusChangeRequest struct {
	Status domain.SolicitationStatus `json:"status"`
}

// ToDomain maps the payload onto a solicitation record.
func (r SolicitationRequest) ToDomain(id string) *domain.Solicitation {
	return &domain.Solicitation{
		ID:          id,
		TecnicoID:   r.TecnicoID,
		TecnicoNome: r.TecnicoNome,
		Data:        r.Data,
		Itens:       r.Itens,
		Desconto:    r.Desconto,
		Frete:       r.Frete,
		Status:      r.Status,
	}
}

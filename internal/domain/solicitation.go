package domain

import "time"

// SolicitationStatus enumerates lifecycle states for part requests.
type SolicitationStatus string

const (
	StatusRascunho   SolicitationStatus = "rascunho"
	StatusEnviada    SolicitationStatus = "enviada"
	StatusPendente   SolicitationStatus = "pendente"
	StatusAprovada   SolicitationStatus = "aprovada"
	StatusRejeitada  SolicitationStatus = "rejeitada"
	StatusEmTransito SolicitationStatus = "em-transito"
	StatusEntregue   SolicitationStatus = "entregue"
	StatusFinalizada SolicitationStatus = "finalizada"
)

var statusTransitions = map[SolicitationStatus][]SolicitationStatus{
	StatusRascunho:   {StatusEnviada},
	StatusEnviada:    {StatusPendente},
	StatusPendente:   {StatusAprovada, StatusRejeitada},
	StatusAprovada:   {StatusEmTransito},
	StatusEmTransito: {StatusEntregue},
	StatusEntregue:   {StatusFinalizada},
}

// CanTransitionTo reports whether next is a legal transition from s.
// Terminal states (rejeitada, finalizada) allow no further transitions.
func (s SolicitationStatus) CanTransitionTo(next SolicitationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of the known values.
func (s SolicitationStatus) Valid() bool {
	switch s {
	case StatusRascunho, StatusEnviada, StatusPendente, StatusAprovada,
		StatusRejeitada, StatusEmTransito, StatusEntregue, StatusFinalizada:
		return true
	}
	return false
}

// SolicitationItem is one requested part line.
type SolicitationItem struct {
	Codigo     string  `json:"codigo"`
	Descricao  string  `json:"descricao"`
	Quantidade float64 `json:"quantidade"`
	ValorUnit  float64 `json:"valorUnit"`
}

// StatusChange is one append-only history entry.
type StatusChange struct {
	Status SolicitationStatus `json:"status"`
	At     time.Time          `json:"at"`
	By     string             `json:"by"`
}

// Solicitation is a parts request moving through the approval workflow.
// Numero is assigned once and never regenerated.
type Solicitation struct {
	ID            string             `json:"id"`
	Numero        string             `json:"numero"`
	TecnicoID     string             `json:"tecnicoId"`
	TecnicoNome   string             `json:"tecnicoNome"`
	Data          string             `json:"data"` // request date, YYYY-MM-DD
	Itens         []SolicitationItem `json:"itens"`
	Subtotal      float64            `json:"subtotal"`
	Desconto      float64            `json:"desconto"`
	Frete         float64            `json:"frete"`
	Total         float64            `json:"total"`
	Status        SolicitationStatus `json:"status"`
	StatusHistory []StatusChange     `json:"statusHistory"`
	CreatedAt     time.Time          `json:"createdAt"`
	ApprovedAt    *time.Time         `json:"approvedAt,omitempty"`
	ApprovedBy    string             `json:"approvedBy,omitempty"`
}

// AppendStatus records a transition in the history and updates the current
// status. History is append-only; entries are never dropped or reordered.
func (s *Solicitation) AppendStatus(status SolicitationStatus, by string, at time.Time) {
	s.Status = status
	s.StatusHistory = append(s.StatusHistory, StatusChange{Status: status, At: at, By: by})
	if status == StatusAprovada {
		approvedAt := at
		s.ApprovedAt = &approvedAt
		s.ApprovedBy = by
	}
}

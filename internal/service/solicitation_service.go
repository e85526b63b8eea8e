package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/internal/events"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// SolicitationService coordinates the request workflow: per-role
// visibility, totals, and the status state machine. Storage itself never
// validates transitions; that responsibility lives here.
type SolicitationService struct {
	data       *data.Manager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSolicitationService builds the service.
func NewSolicitationService(dataManager *data.Manager, dispatcher events.Dispatcher, logger *zap.Logger) *SolicitationService {
	return &SolicitationService{data: dataManager, dispatcher: dispatcher, logger: logger}
}

// List returns the solicitations the session may see: everything for roles
// holding viewAll, otherwise only the technician's own records.
func (s *SolicitationService) List(ctx context.Context, session *domain.Session) []domain.Solicitation {
	all := s.data.Solicitations(ctx)
	if auth.HasPermission(session.User.Role, auth.ModuleSolicitacoes, auth.ActionViewAll) {
		return all
	}

	var own []domain.Solicitation
	for _, sol := range all {
		if sol.TecnicoID != "" && sol.TecnicoID == session.User.TecnicoID {
			own = append(own, sol)
		}
	}
	return own
}

// Get returns one solicitation, enforcing own-only visibility.
func (s *SolicitationService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Solicitation, error) {
	sol, found := s.data.SolicitationByID(ctx, id)
	if !found {
		return nil, apperrors.NewNotFound("solicitação", map[string]any{"id": id})
	}
	if !s.canTouch(session, sol) {
		return nil, apperrors.NewForbidden("solicitação de outro técnico")
	}
	return sol, nil
}

// Create registers a new request for the session's technician.
func (s *SolicitationService) Create(ctx context.Context, session *domain.Session, sol *domain.Solicitation) error {
	if session.User.Role == domain.RoleTecnico {
		sol.TecnicoID = session.User.TecnicoID
		sol.TecnicoNome = session.User.Name
	}
	if sol.Data == "" {
		sol.Data = time.Now().Format("2006-01-02")
	}
	if sol.Status == "" {
		sol.Status = domain.StatusRascunho
	}
	if !sol.Status.Valid() {
		return apperrors.NewValidationError("status inválido", map[string]any{"status": string(sol.Status)})
	}

	recalculate(sol)
	sol.StatusHistory = []domain.StatusChange{{Status: sol.Status, At: time.Now(), By: session.User.Username}}

	if err := s.data.SaveSolicitation(ctx, sol); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSolicitationCreated,
		Timestamp: time.Now(),
		Payload:   events.CollectionChangedPayload{Collection: data.KeySolicitations},
	})
	return nil
}

// Update replaces the editable fields of a request, preserving its number,
// status and history.
func (s *SolicitationService) Update(ctx context.Context, session *domain.Session, sol *domain.Solicitation) error {
	current, err := s.Get(ctx, session, sol.ID)
	if err != nil {
		return err
	}

	if sol.TecnicoID == "" {
		sol.TecnicoID = current.TecnicoID
		sol.TecnicoNome = current.TecnicoNome
	}
	sol.Numero = current.Numero
	sol.Status = current.Status
	sol.StatusHistory = current.StatusHistory
	sol.CreatedAt = current.CreatedAt
	sol.ApprovedAt = current.ApprovedAt
	sol.ApprovedBy = current.ApprovedBy
	recalculate(sol)

	return s.data.SaveSolicitation(ctx, sol)
}

// Delete removes a request, enforcing own-only visibility.
func (s *SolicitationService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if _, err := s.Get(ctx, session, id); err != nil {
		return err
	}
	if !s.data.DeleteSolicitation(ctx, id) {
		return apperrors.NewNotFound("solicitação", map[string]any{"id": id})
	}
	return nil
}

// Transition moves a request to the next status. Illegal jumps are
// rejected; approval and rejection additionally require the approvals
// permission. History is append-only.
func (s *SolicitationService) Transition(ctx context.Context, session *domain.Session, id string, next domain.SolicitationStatus) (*domain.Solicitation, error) {
	sol, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("status inválido", map[string]any{"status": string(next)})
	}
	if !sol.Status.CanTransitionTo(next) {
		return nil, apperrors.NewValidationError("transição de status inválida", map[string]any{
			"from": string(sol.Status), "to": string(next),
		})
	}

	module, action := transitionPermission(next)
	if !auth.HasPermission(session.User.Role, module, action) {
		return nil, apperrors.NewForbidden("permissão insuficiente para esta transição")
	}

	oldStatus := sol.Status
	sol.AppendStatus(next, session.User.Username, time.Now())
	if err := s.data.SaveSolicitation(ctx, sol); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStatusChanged,
		Timestamp: time.Now(),
		Payload: events.StatusChangedPayload{
			SolicitationID: sol.ID,
			OldStatus:      string(oldStatus),
			NewStatus:      string(next),
			Actor:          session.User.Username,
		},
	})
	return sol, nil
}

// canTouch applies own-only visibility for technicians.
func (s *SolicitationService) canTouch(session *domain.Session, sol *domain.Solicitation) bool {
	if auth.HasPermission(session.User.Role, auth.ModuleSolicitacoes, auth.ActionViewAll) {
		return true
	}
	return sol.TecnicoID != "" && sol.TecnicoID == session.User.TecnicoID
}

// transitionPermission maps a target status to the table entry that gates
// it: approval/rejection and the delivery chain belong to the approvals
// module, submission to request editing.
func transitionPermission(next domain.SolicitationStatus) (module, action string) {
	switch next {
	case domain.StatusAprovada:
		return auth.ModuleAprovacoes, auth.ActionApprove
	case domain.StatusRejeitada:
		return auth.ModuleAprovacoes, auth.ActionReject
	case domain.StatusEmTransito, domain.StatusEntregue, domain.StatusFinalizada:
		return auth.ModuleAprovacoes, auth.ActionView
	default:
		return auth.ModuleSolicitacoes, auth.ActionEdit
	}
}

// recalculate derives subtotal and total from the item lines.
func recalculate(sol *domain.Solicitation) {
	var subtotal float64
	for _, item := range sol.Itens {
		subtotal += item.Quantidade * item.ValorUnit
	}
	sol.Subtotal = subtotal
	sol.Total = subtotal - sol.Desconto + sol.Frete
}

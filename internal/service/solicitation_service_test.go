package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/cache"
	"github.com/spec-kit/requisition-service/internal/cloud"
	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/internal/events"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

func newSolicitationFixture(t *testing.T) (*SolicitationService, *data.Manager) {
	t.Helper()
	client := cloud.NewClient(cloud.ClientOptions{Cache: cache.NewMemoryStore("test"), Logger: zap.NewNop()})
	dispatcher := events.NewInMemoryDispatcher()
	manager := data.NewManager(client, auth.NewHasher("segredo-teste"), dispatcher, zap.NewNop())
	return NewSolicitationService(manager, dispatcher, zap.NewNop()), manager
}

func sessionFor(role domain.Role, tecnicoID string) *domain.Session {
	return &domain.Session{
		ID: "sessao-teste",
		User: domain.SessionUser{
			ID:        "u-" + string(role),
			Username:  string(role) + ".teste",
			Name:      "Usuário " + string(role),
			Role:      role,
			TecnicoID: tecnicoID,
		},
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
	}
}

// TestList_Visibility verifies technicians see only their own requests
// while viewAll roles see everything.
func TestList_Visibility(t *testing.T) {
	ctx := context.Background()
	svc, manager := newSolicitationFixture(t)

	for _, tecnico := range []string{"t-1", "t-1", "t-2"} {
		sol := domain.Solicitation{TecnicoID: tecnico, Data: "2024-01-01"}
		require.NoError(t, manager.SaveSolicitation(ctx, &sol))
	}

	assert.Len(t, svc.List(ctx, sessionFor(domain.RoleAdministrador, "")), 3)
	assert.Len(t, svc.List(ctx, sessionFor(domain.RoleGestor, "")), 3)
	assert.Len(t, svc.List(ctx, sessionFor(domain.RoleTecnico, "t-1")), 2)
	assert.Len(t, svc.List(ctx, sessionFor(domain.RoleTecnico, "t-2")), 1)
	assert.Empty(t, svc.List(ctx, sessionFor(domain.RoleTecnico, "t-3")))
}

// TestGet_OwnOnly verifies a technician cannot read another technician's
// request.
func TestGet_OwnOnly(t *testing.T) {
	ctx := context.Background()
	svc, manager := newSolicitationFixture(t)

	sol := domain.Solicitation{TecnicoID: "t-1", Data: "2024-01-01"}
	require.NoError(t, manager.SaveSolicitation(ctx, &sol))

	got, err := svc.Get(ctx, sessionFor(domain.RoleTecnico, "t-1"), sol.ID)
	require.NoError(t, err)
	assert.Equal(t, sol.ID, got.ID)

	_, err = svc.Get(ctx, sessionFor(domain.RoleTecnico, "t-2"), sol.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.Get(ctx, sessionFor(domain.RoleAdministrador, ""), "inexistente")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// TestCreate_Defaults verifies ownership forcing, default date and status,
// totals and the initial history entry.
func TestCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	session := sessionFor(domain.RoleTecnico, "t-1")

	sol := domain.Solicitation{
		TecnicoID: "t-outro", // ignored for technicians
		Itens: []domain.SolicitationItem{
			{Codigo: "CB001", Quantidade: 2, ValorUnit: 25.90},
			{Codigo: "FT001", Quantidade: 1, ValorUnit: 78.00},
		},
		Desconto: 10,
		Frete:    15,
	}
	require.NoError(t, svc.Create(ctx, session, &sol))

	assert.Equal(t, "t-1", sol.TecnicoID)
	assert.Equal(t, session.User.Name, sol.TecnicoNome)
	assert.Equal(t, time.Now().Format("2006-01-02"), sol.Data)
	assert.Equal(t, domain.StatusRascunho, sol.Status)
	assert.NotEmpty(t, sol.Numero)

	assert.InDelta(t, 129.80, sol.Subtotal, 0.001)
	assert.InDelta(t, 134.80, sol.Total, 0.001)

	require.Len(t, sol.StatusHistory, 1)
	assert.Equal(t, domain.StatusRascunho, sol.StatusHistory[0].Status)
	assert.Equal(t, session.User.Username, sol.StatusHistory[0].By)
}

// TestCreate_InvalidStatus verifies unknown initial statuses are rejected.
func TestCreate_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)

	sol := domain.Solicitation{TecnicoID: "t-1", Status: domain.SolicitationStatus("voando")}
	err := svc.Create(ctx, sessionFor(domain.RoleAdministrador, ""), &sol)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

// TestUpdate_PreservesWorkflowFields verifies edits recalculate totals but
// never touch number, status or history.
func TestUpdate_PreservesWorkflowFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	session := sessionFor(domain.RoleTecnico, "t-1")

	sol := domain.Solicitation{Itens: []domain.SolicitationItem{{Codigo: "CB001", Quantidade: 1, ValorUnit: 10}}}
	require.NoError(t, svc.Create(ctx, session, &sol))
	numero := sol.Numero

	edited := sol
	edited.Numero = "REQ-00000000-9999"
	edited.Status = domain.StatusAprovada
	edited.Itens = []domain.SolicitationItem{{Codigo: "CB001", Quantidade: 3, ValorUnit: 10}}
	require.NoError(t, svc.Update(ctx, session, &edited))

	stored, err := svc.Get(ctx, session, sol.ID)
	require.NoError(t, err)
	assert.Equal(t, numero, stored.Numero)
	assert.Equal(t, domain.StatusRascunho, stored.Status)
	require.Len(t, stored.StatusHistory, 1)
	assert.InDelta(t, 30.0, stored.Total, 0.001)
}

// TestTransition_FullFlow walks a request through the whole approval and
// delivery chain, checking history and approval stamps.
func TestTransition_FullFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	tecnico := sessionFor(domain.RoleTecnico, "t-1")
	gestor := sessionFor(domain.RoleGestor, "")

	sol := domain.Solicitation{Itens: []domain.SolicitationItem{{Codigo: "CB001", Quantidade: 1, ValorUnit: 10}}}
	require.NoError(t, svc.Create(ctx, tecnico, &sol))

	_, err := svc.Transition(ctx, tecnico, sol.ID, domain.StatusEnviada)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, tecnico, sol.ID, domain.StatusPendente)
	require.NoError(t, err)

	approved, err := svc.Transition(ctx, gestor, sol.ID, domain.StatusAprovada)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAprovada, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, gestor.User.Username, approved.ApprovedBy)

	_, err = svc.Transition(ctx, gestor, sol.ID, domain.StatusEmTransito)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, gestor, sol.ID, domain.StatusEntregue)
	require.NoError(t, err)
	final, err := svc.Transition(ctx, gestor, sol.ID, domain.StatusFinalizada)
	require.NoError(t, err)

	// Creation plus six transitions.
	assert.Len(t, final.StatusHistory, 7)

	// Terminal state allows nothing further.
	_, err = svc.Transition(ctx, gestor, sol.ID, domain.StatusEnviada)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

// TestTransition_IllegalJump verifies skipping states is rejected.
func TestTransition_IllegalJump(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	tecnico := sessionFor(domain.RoleTecnico, "t-1")

	sol := domain.Solicitation{}
	require.NoError(t, svc.Create(ctx, tecnico, &sol))

	_, err := svc.Transition(ctx, tecnico, sol.ID, domain.StatusAprovada)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

// TestTransition_TechnicianCannotApprove verifies approval and rejection
// require the approvals permission.
func TestTransition_TechnicianCannotApprove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	tecnico := sessionFor(domain.RoleTecnico, "t-1")
	gestor := sessionFor(domain.RoleGestor, "")

	sol := domain.Solicitation{}
	require.NoError(t, svc.Create(ctx, tecnico, &sol))
	_, err := svc.Transition(ctx, tecnico, sol.ID, domain.StatusEnviada)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, tecnico, sol.ID, domain.StatusPendente)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, tecnico, sol.ID, domain.StatusAprovada)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.Transition(ctx, tecnico, sol.ID, domain.StatusRejeitada)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	// The manager can.
	_, err = svc.Transition(ctx, gestor, sol.ID, domain.StatusRejeitada)
	assert.NoError(t, err)
}

// TestDelete_OwnOnly verifies deletion respects ownership.
func TestDelete_OwnOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSolicitationFixture(t)
	tecnico := sessionFor(domain.RoleTecnico, "t-1")

	sol := domain.Solicitation{}
	require.NoError(t, svc.Create(ctx, tecnico, &sol))

	err := svc.Delete(ctx, sessionFor(domain.RoleTecnico, "t-2"), sol.ID)
	require.Error(t, err)

	require.NoError(t, svc.Delete(ctx, tecnico, sol.ID))
	_, err = svc.Get(ctx, tecnico, sol.ID)
	assert.Error(t, err)
}

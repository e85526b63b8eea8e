package data

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/config"
	"github.com/spec-kit/requisition-service/internal/domain"
)

// ConfigureSeed sets the admin credentials used when the users collection
// is first created.
func (m *Manager) ConfigureSeed(cfg config.SeedConfig) {
	m.seedCfg = cfg
}

// seed writes default data for every collection whose key is entirely
// absent. Existing collections are never touched, so re-running is safe.
func (m *Manager) seed(ctx context.Context) error {
	if m.collectionAbsent(ctx, KeyUsers) {
		if err := m.seedUsers(ctx); err != nil {
			return err
		}
	}
	if m.collectionAbsent(ctx, KeyParts) {
		m.saveCollection(ctx, KeyParts, defaultParts())
		m.logger.Info("seeded parts catalog", zap.Int("count", len(defaultParts())))
	}
	if m.collectionAbsent(ctx, KeyTechnicians) {
		m.saveCollection(ctx, KeyTechnicians, []domain.Technician{})
	}
	if m.collectionAbsent(ctx, KeySuppliers) {
		m.saveCollection(ctx, KeySuppliers, []domain.Supplier{})
	}
	if m.collectionAbsent(ctx, KeySolicitations) {
		m.saveCollection(ctx, KeySolicitations, []domain.Solicitation{})
	}
	if m.collectionAbsent(ctx, KeySettings) {
		m.saveCollection(ctx, KeySettings, domain.DefaultSettings())
	}
	if m.collectionAbsent(ctx, KeyRecentParts) {
		m.saveCollection(ctx, KeyRecentParts, map[string][]string{})
	}
	return nil
}

func (m *Manager) seedUsers(ctx context.Context) error {
	username := m.seedCfg.AdminUsername
	if username == "" {
		username = "admin"
	}
	password := m.seedCfg.AdminPassword
	if password == "" {
		password = "admin123"
	}

	hash, err := m.hasher.HashPassword(password, username)
	if err != nil {
		return err
	}

	admin := domain.User{
		Username:     username,
		Name:         "Administrador",
		Role:         domain.RoleAdministrador,
		PasswordHash: hash,
	}
	if err := m.SaveUser(ctx, &admin); err != nil {
		return err
	}
	m.logger.Info("seeded admin user", zap.String("username", username))
	return nil
}

func defaultParts() []domain.Part {
	return []domain.Part{
		{ID: "p-0001", Codigo: "CB001", Descricao: "Cabo de força 3m", Categoria: "Cabos", Valor: 25.90, Unidade: "un", Ativo: true},
		{ID: "p-0002", Codigo: "CB002", Descricao: "Cabo de rede Cat6 5m", Categoria: "Cabos", Valor: 32.50, Unidade: "un", Ativo: true},
		{ID: "p-0003", Codigo: "FT001", Descricao: "Fonte chaveada 12V 5A", Categoria: "Fontes", Valor: 78.00, Unidade: "un", Ativo: true},
		{ID: "p-0004", Codigo: "FT002", Descricao: "Fonte ATX 500W", Categoria: "Fontes", Valor: 189.90, Unidade: "un", Ativo: true},
		{ID: "p-0005", Codigo: "CN001", Descricao: "Conector RJ45 macho", Categoria: "Conectores", Valor: 1.20, Unidade: "un", Ativo: true},
		{ID: "p-0006", Codigo: "CN002", Descricao: "Conector BNC fêmea", Categoria: "Conectores", Valor: 3.80, Unidade: "un", Ativo: true},
		{ID: "p-0007", Codigo: "SN001", Descricao: "Sensor de presença infravermelho", Categoria: "Sensores", Valor: 45.00, Unidade: "un", Ativo: true},
		{ID: "p-0008", Codigo: "VL001", Descricao: "Válvula solenoide 1/2\"", Categoria: "Hidráulica", Valor: 112.40, Unidade: "un", Ativo: true},
		{ID: "p-0009", Codigo: "PR001", Descricao: "Parafuso sextavado M6 (cento)", Categoria: "Fixação", Valor: 18.00, Unidade: "cx", Ativo: true},
		{ID: "p-0010", Codigo: "BT001", Descricao: "Bateria selada 12V 7Ah", Categoria: "Energia", Valor: 98.50, Unidade: "un", Ativo: true},
	}
}

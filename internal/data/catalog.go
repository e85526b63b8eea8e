package data

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/pkg/util"
)

// Technicians returns all technician records.
func (m *Manager) Technicians(ctx context.Context) []domain.Technician {
	var technicians []domain.Technician
	m.loadCollection(ctx, KeyTechnicians, &technicians)
	return technicians
}

// TechnicianByID returns the technician with the given id.
func (m *Manager) TechnicianByID(ctx context.Context, id string) (*domain.Technician, bool) {
	for _, tech := range m.Technicians(ctx) {
		if tech.ID == id {
			t := tech
			return &t, true
		}
	}
	return nil, false
}

// SaveTechnician inserts or replaces a technician.
func (m *Manager) SaveTechnician(ctx context.Context, tech *domain.Technician) error {
	if tech.Nome == "" {
		return util.NewValidationError("nome obrigatório", nil)
	}

	technicians := m.Technicians(ctx)
	if tech.ID == "" {
		tech.ID = uuid.NewString()
		technicians = append(technicians, *tech)
	} else {
		replaced := false
		for i := range technicians {
			if technicians[i].ID == tech.ID {
				technicians[i] = *tech
				replaced = true
				break
			}
		}
		if !replaced {
			technicians = append(technicians, *tech)
		}
	}

	m.saveCollection(ctx, KeyTechnicians, technicians)
	return nil
}

// DeleteTechnician removes the technician with the given id.
func (m *Manager) DeleteTechnician(ctx context.Context, id string) bool {
	technicians := m.Technicians(ctx)
	for i := range technicians {
		if technicians[i].ID == id {
			technicians = append(technicians[:i], technicians[i+1:]...)
			m.saveCollection(ctx, KeyTechnicians, technicians)
			return true
		}
	}
	return false
}

// Suppliers returns all supplier records.
func (m *Manager) Suppliers(ctx context.Context) []domain.Supplier {
	var suppliers []domain.Supplier
	m.loadCollection(ctx, KeySuppliers, &suppliers)
	return suppliers
}

// SupplierByID returns the supplier with the given id.
func (m *Manager) SupplierByID(ctx context.Context, id string) (*domain.Supplier, bool) {
	for _, supplier := range m.Suppliers(ctx) {
		if supplier.ID == id {
			s := supplier
			return &s, true
		}
	}
	return nil, false
}

// SaveSupplier inserts or replaces a supplier.
func (m *Manager) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.Nome == "" {
		return util.NewValidationError("nome obrigatório", nil)
	}

	suppliers := m.Suppliers(ctx)
	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
		suppliers = append(suppliers, *supplier)
	} else {
		replaced := false
		for i := range suppliers {
			if suppliers[i].ID == supplier.ID {
				suppliers[i] = *supplier
				replaced = true
				break
			}
		}
		if !replaced {
			suppliers = append(suppliers, *supplier)
		}
	}

	m.saveCollection(ctx, KeySuppliers, suppliers)
	return nil
}

// DeleteSupplier removes the supplier with the given id.
func (m *Manager) DeleteSupplier(ctx context.Context, id string) bool {
	suppliers := m.Suppliers(ctx)
	for i := range suppliers {
		if suppliers[i].ID == id {
			suppliers = append(suppliers[:i], suppliers[i+1:]...)
			m.saveCollection(ctx, KeySuppliers, suppliers)
			return true
		}
	}
	return false
}

// Parts returns all catalog parts.
func (m *Manager) Parts(ctx context.Context) []domain.Part {
	var parts []domain.Part
	m.loadCollection(ctx, KeyParts, &parts)
	return parts
}

// PartByID returns the part with the given id.
func (m *Manager) PartByID(ctx context.Context, id string) (*domain.Part, bool) {
	for _, part := range m.Parts(ctx) {
		if part.ID == id {
			p := part
			return &p, true
		}
	}
	return nil, false
}

// SavePart inserts or replaces a part. Codigo is unique; a duplicate is a
// conflict error, never a silent overwrite.
func (m *Manager) SavePart(ctx context.Context, part *domain.Part) error {
	if part.Codigo == "" || part.Descricao == "" {
		return util.NewValidationError("código e descrição obrigatórios", nil)
	}

	parts := m.Parts(ctx)
	for _, existing := range parts {
		if existing.ID != part.ID && existing.Codigo == part.Codigo {
			return util.NewConflict("código já cadastrado", map[string]any{"codigo": part.Codigo})
		}
	}

	if part.ID == "" {
		part.ID = uuid.NewString()
		parts = append(parts, *part)
	} else {
		replaced := false
		for i := range parts {
			if parts[i].ID == part.ID {
				parts[i] = *part
				replaced = true
				break
			}
		}
		if !replaced {
			parts = append(parts, *part)
		}
	}

	m.saveCollection(ctx, KeyParts, parts)
	return nil
}

// DeletePart removes the part with the given id.
func (m *Manager) DeletePart(ctx context.Context, id string) bool {
	parts := m.Parts(ctx)
	for i := range parts {
		if parts[i].ID == id {
			parts = append(parts[:i], parts[i+1:]...)
			m.saveCollection(ctx, KeyParts, parts)
			return true
		}
	}
	return false
}

package dto

import "github.com/spec-kit/requisition-service/internal/domain"

// PartRequest payload for catalog parts.
type PartRequest struct {
	Codigo    string  `json:"codigo"`
	Descricao string  `json:"descricao"`
	Categoria string  `json:"categoria"`
	Valor     float64 `json:"valor"`
	Unidade   string  `json:"unidade"`
	Ativo     *bool   `json:"ativo"`
}

// ToDomain maps the payload onto a part record.
func (r PartRequest) ToDomain(id string) *domain.Part {
	ativo := true
	if r.Ativo != nil {
		ativo = *r.Ativo
	}
	return &domain.Part{
		ID:        id,
		Codigo:    r.Codigo,
		Descricao: r.Descricao,
		Categoria: r.Categoria,
		Valor:     r.Valor,
		Unidade:   r.Unidade,
		Ativo:     ativo,
	}
}

// TechnicianRequest payload for technicians.
type TechnicianRequest struct {
	Nome     string `json:"nome"`
	Username string `json:"username"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Ativo    *bool  `json:"ativo"`
}

// ToDomain maps the payload onto a technician record.
func (r TechnicianRequest) ToDomain(id string) *domain.Technician {
	ativo := true
	if r.Ativo != nil {
		ativo = *r.Ativo
	}
	return &domain.Technician{
		ID:       id,
		Nome:     r.Nome,
		Username: r.Username,
		Telefone: r.Telefone,
		Email:    r.Email,
		Endereco: r.Endereco,
		Cidade:   r.Cidade,
		Ativo:    ativo,
	}
}

// SupplierRequest payload for suppliers.
type SupplierRequest struct {
	Nome     string `json:"nome"`
	Contato  string `json:"contato"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Ativo    *bool  `json:"ativo"`
}

// ToDomain maps the payload onto a supplier record.
func (r SupplierRequest) ToDomain(id string) *domain.Supplier {
	ativo := true
	if r.Ativo != nil {
		ativo = *r.Ativo
	}
	return &domain.Supplier{
		ID:       id,
		Nome:     r.Nome,
		Contato:  r.Contato,
		Telefone: r.Telefone,
		Email:    r.Email,
		Ativo:    ativo,
	}
}

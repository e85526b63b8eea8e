package domain

// Technician is a field technician who submits part requests.
type Technician struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Username string `json:"username,omitempty"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
	Endereco string `json:"endereco,omitempty"`
	Cidade   string `json:"cidade,omitempty"`
	Ativo    bool   `json:"ativo"`
}

// Supplier is a parts supplier record.
type Supplier struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Contato  string `json:"contato,omitempty"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
	Ativo    bool   `json:"ativo"`
}

// Part is a catalog entry. Codigo is unique across the catalog.
type Part struct {
	ID        string  `json:"id"`
	Codigo    string  `json:"codigo"`
	Descricao string  `json:"descricao"`
	Categoria string  `json:"categoria,omitempty"`
	Valor     float64 `json:"valor"`
	Unidade   string  `json:"unidade,omitempty"`
	Ativo     bool    `json:"ativo"`
}

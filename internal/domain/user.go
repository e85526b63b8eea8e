package domain

// Role enumerates the fixed access roles.
type Role string

const (
	RoleAdministrador Role = "administrador"
	RoleGestor        Role = "gestor"
	RoleTecnico       Role = "tecnico"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrador, RoleGestor, RoleTecnico:
		return true
	}
	return false
}

// User is an account that can sign in. Username is unique after
// normalization (lowercase, diacritics stripped, dot-separated).
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	// Password holds a legacy plaintext credential only until the startup
	// migration rewrites it as PasswordHash. Never set on new records.
	Password  string `json:"password,omitempty"`
	TecnicoID string `json:"tecnicoId,omitempty"`
	Disabled  bool   `json:"disabled"`
}

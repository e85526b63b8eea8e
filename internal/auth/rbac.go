package auth

import "github.com/spec-kit/requisition-service/internal/domain"

// Module and action identifiers used by the permission table.
const (
	ModuleDashboard     = "dashboard"
	ModuleSolicitacoes  = "solicitacoes"
	ModuleAprovacoes    = "aprovacoes"
	ModuleCadastros     = "cadastros"
	ModuleRelatorios    = "relatorios"
	ModuleConfiguracoes = "configuracoes"

	ActionView    = "view"
	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionViewAll = "viewAll"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionExport  = "export"
)

// modulePermissions holds the per-module flags for one role.
type modulePermissions struct {
	visible bool
	actions map[string]bool
}

// permissionTable is the single authoritative role-to-permission mapping.
// Every UI/API gate derives from this table and nothing else.
var permissionTable = map[domain.Role]map[string]modulePermissions{
	domain.RoleAdministrador: {
		ModuleDashboard: {visible: true},
		ModuleSolicitacoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionCreate: true, ActionEdit: true, ActionDelete: true, ActionViewAll: true,
		}},
		ModuleAprovacoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionApprove: true, ActionReject: true,
		}},
		ModuleCadastros: {visible: true, actions: map[string]bool{
			ActionView: true, ActionCreate: true, ActionEdit: true, ActionDelete: true,
		}},
		ModuleRelatorios: {visible: true, actions: map[string]bool{
			ActionView: true, ActionExport: true,
		}},
		ModuleConfiguracoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionEdit: true,
		}},
	},
	domain.RoleGestor: {
		ModuleDashboard: {visible: true},
		ModuleSolicitacoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionViewAll: true,
		}},
		ModuleAprovacoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionApprove: true, ActionReject: true,
		}},
		ModuleCadastros: {visible: true, actions: map[string]bool{
			ActionView: true,
		}},
		ModuleRelatorios: {visible: true, actions: map[string]bool{
			ActionView: true, ActionExport: true,
		}},
		ModuleConfiguracoes: {visible: true, actions: map[string]bool{
			ActionView: true,
		}},
	},
	domain.RoleTecnico: {
		ModuleSolicitacoes: {visible: true, actions: map[string]bool{
			ActionView: true, ActionCreate: true, ActionEdit: true, ActionDelete: true,
		}},
		ModuleCadastros: {visible: true, actions: map[string]bool{
			ActionView: true,
		}},
	},
}

// roleMenus defines route visibility per role.
var roleMenus = map[domain.Role][]string{
	domain.RoleAdministrador: {
		"dashboard", "solicitacoes", "nova-solicitacao", "aprovacoes",
		"cadastros", "catalogo", "relatorios", "configuracoes", "usuarios",
	},
	domain.RoleGestor: {
		"dashboard", "solicitacoes", "aprovacoes", "cadastros", "relatorios", "configuracoes",
	},
	domain.RoleTecnico: {
		"solicitacoes",
	},
}

// routeExceptions grants routes outside the menu definition. Technicians
// always reach the new-request and catalog views.
var routeExceptions = map[domain.Role][]string{
	domain.RoleTecnico: {"nova-solicitacao", "catalogo"},
}

// HasPermission reports whether the role may perform action on module.
// With an empty action it reports module visibility. Unknown roles,
// modules, and actions are false, never an error.
func HasPermission(role domain.Role, module, action string) bool {
	modules, ok := permissionTable[role]
	if !ok {
		return false
	}
	perms, ok := modules[module]
	if !ok {
		return false
	}
	if action == "" {
		return perms.visible
	}
	return perms.actions[action]
}

// CanAccessRoute reports whether the role may reach routeID, either through
// its menu or a role-specific exception.
func CanAccessRoute(role domain.Role, routeID string) bool {
	for _, route := range roleMenus[role] {
		if route == routeID {
			return true
		}
	}
	for _, route := range routeExceptions[role] {
		if route == routeID {
			return true
		}
	}
	return false
}

// MenuFor returns the ordered route list for a role.
func MenuFor(role domain.Role) []string {
	menu := roleMenus[role]
	out := make([]string, len(menu))
	copy(out, menu)
	return out
}

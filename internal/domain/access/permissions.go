// Package access define la matriz de permisos rol × módulo × acción.
package access

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// Módulos funcionales protegidos por permisos.
const (
	ModuleSales      = "sales"
	ModulePurchases  = "purchases"
	ModuleInventory  = "inventory"
	ModuleAccounting = "accounting"
	ModuleReports    = "reports"
	ModuleSettings   = "settings"
)

// Acciones sobre un módulo.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Modules todos los módulos.
var Modules = []string{ModuleSales, ModulePurchases, ModuleInventory, ModuleAccounting, ModuleReports, ModuleSettings}

// Permission permisos de un rol sobre un módulo.
type Permission struct {
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

var (
	full     = Permission{true, true, true, true}
	noDelete = Permission{true, true, true, false}
	readOnly = Permission{CanView: true}
	none     = Permission{}
)

var matrix = map[string]map[string]Permission{
	entity.RoleAdmin: {
		ModuleSales: full, ModulePurchases: full, ModuleInventory: full,
		ModuleAccounting: full, ModuleReports: full, ModuleSettings: full,
	},
	entity.RoleManager: {
		ModuleSales: full, ModulePurchases: full, ModuleInventory: full,
		ModuleAccounting: full, ModuleReports: full, ModuleSettings: readOnly,
	},
	entity.RoleAccountant: {
		ModuleSales: noDelete, ModulePurchases: noDelete, ModuleInventory: readOnly,
		ModuleAccounting: full, ModuleReports: full, ModuleSettings: none,
	},
	entity.RoleStaff: {
		ModuleSales: noDelete, ModulePurchases: noDelete, ModuleInventory: noDelete,
		ModuleAccounting: readOnly, ModuleReports: none, ModuleSettings: none,
	},
}

// For devuelve el permiso de un rol sobre un módulo (vacío si no existe).
func For(role, module string) Permission {
	return matrix[role][module]
}

// Allowed indica si el rol puede ejecutar la acción en el módulo.
func Allowed(role, module, action string) bool {
	p := For(role, module)
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// Matrix devuelve la matriz completa de un rol (para GET /api/user).
func Matrix(role string) map[string]Permission {
	out := make(map[string]Permission, len(Modules))
	for _, m := range Modules {
		out[m] = For(role, m)
	}
	return out
}

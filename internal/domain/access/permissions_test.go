package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/internal/domain/access"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func TestAllowed_AdminTodo(t *testing.T) {
	for _, m := range access.Modules {
		assert.True(t, access.Allowed(entity.RoleAdmin, m, access.ActionDelete), m)
	}
}

func TestAllowed_StaffSinReportes(t *testing.T) {
	assert.False(t, access.Allowed(entity.RoleStaff, access.ModuleReports, access.ActionView))
	assert.True(t, access.Allowed(entity.RoleStaff, access.ModuleSales, access.ActionCreate))
	assert.False(t, access.Allowed(entity.RoleStaff, access.ModuleSales, access.ActionDelete))
	assert.False(t, access.Allowed(entity.RoleStaff, access.ModuleAccounting, access.ActionEdit))
}

func TestAllowed_AccountantContabilidad(t *testing.T) {
	assert.True(t, access.Allowed(entity.RoleAccountant, access.ModuleAccounting, access.ActionDelete))
	assert.False(t, access.Allowed(entity.RoleAccountant, access.ModuleInventory, access.ActionCreate))
}

func TestAllowed_RolDesconocido(t *testing.T) {
	assert.False(t, access.Allowed("bodeguero", access.ModuleSales, access.ActionView))
	assert.False(t, access.Allowed(entity.RoleAdmin, access.ModuleSales, "approve"))
}

func TestMatrix_IncluyeTodosLosModulos(t *testing.T) {
	m := access.Matrix(entity.RoleManager)
	assert.Len(t, m, len(access.Modules))
	assert.False(t, m[access.ModuleSettings].CanEdit)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

const adminID = "00000000-0000-0000-0000-0000000000ad"

func userFixture() (*usecase.UserUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	repo.rows[adminID] = &entity.User{ID: adminID, CompanyID: companyA, Email: "admin@acme.test", Role: entity.RoleAdmin, Status: entity.UserStatusActive}
	return usecase.NewUserUseCase(repo), repo
}

func TestUserUseCase_CreateEmailUnico(t *testing.T) {
	uc, _ := userFixture()
	ctx := context.Background()

	out, err := uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "Contador@Acme.test", Password: "secreto123", Name: "Ana", Role: entity.RoleAccountant})
	require.NoError(t, err)
	assert.Equal(t, "contador@acme.test", out.Email)
	assert.Equal(t, entity.UserStatusActive, out.Status)

	// el email es único entre empresas
	_, err = uc.Create(ctx, companyB, dto.CreateUserRequest{Email: "admin@acme.test", Password: "secreto123", Name: "X", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_AdminNoSeDegradaNiSeBorra(t *testing.T) {
	uc, repo := userFixture()
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, companyA, adminID, adminID), domain.ErrConflict)
	_, err := uc.Update(ctx, companyA, adminID, adminID, dto.UpdateUserRequest{Role: strPtr(entity.RoleStaff)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Update(ctx, companyA, adminID, adminID, dto.UpdateUserRequest{Status: strPtr(entity.UserStatusInactive)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.RoleAdmin, repo.rows[adminID].Role)

	// cambiar su propio nombre sí está permitido
	out, err := uc.Update(ctx, companyA, adminID, adminID, dto.UpdateUserRequest{Name: strPtr("Admin"), Role: strPtr(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "Admin", out.Name)
}

func TestUserUseCase_AdministraOtrosUsuarios(t *testing.T) {
	uc, repo := userFixture()
	ctx := context.Background()
	staff, err := uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "staff@acme.test", Password: "secreto123", Name: "Luis", Role: entity.RoleStaff})
	require.NoError(t, err)
	oldHash := repo.rows[staff.ID].PasswordHash

	out, err := uc.Update(ctx, companyA, adminID, staff.ID, dto.UpdateUserRequest{
		Role:     strPtr(entity.RoleManager),
		Status:   strPtr(entity.UserStatusInactive),
		Password: strPtr("otraClave456"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, entity.UserStatusInactive, out.Status)
	assert.NotEqual(t, oldHash, repo.rows[staff.ID].PasswordHash)

	_, err = uc.GetByID(ctx, companyB, staff.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, companyB, adminID, staff.ID), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, companyA, adminID, staff.ID))
	list, err := uc.List(ctx, companyA, dto.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

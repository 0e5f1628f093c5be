package user_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/user"
)

func TestNewUser(t *testing.T) {
	u, err := user.NewUser("João Lima", "joao@email.com", "segredo1", user.RoleSalesman)
	require.NoError(t, err)

	require.True(t, u.Active)
	require.NotEqual(t, "segredo1", u.Password, "a senha não pode ser armazenada em texto puro")
	require.True(t, u.CheckPassword("segredo1"))
	require.False(t, u.CheckPassword("errada12"))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := user.NewUser("", "joao@email.com", "segredo1", user.RoleAdmin)
	require.ErrorIs(t, err, user.ErrEmptyName)

	_, err = user.NewUser("João", "", "segredo1", user.RoleAdmin)
	require.ErrorIs(t, err, user.ErrEmptyEmail)

	_, err = user.NewUser("João", "joao@email.com", "12345", user.RoleAdmin)
	require.ErrorIs(t, err, user.ErrShortPassword)

	_, err = user.NewUser("João", "joao@email.com", "segredo1", user.Role("estagiario"))
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestRoles(t *testing.T) {
	for _, r := range []user.Role{user.RoleAdmin, user.RoleManager, user.RoleSalesman, user.RoleStock} {
		require.True(t, user.ValidRole(r))
	}
	require.False(t, user.ValidRole(user.Role("root")))

	admin, err := user.NewUser("Ana", "ana@email.com", "segredo1", user.RoleAdmin)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())
	require.False(t, admin.IsManager())
}

func TestRegisterAccess(t *testing.T) {
	u, err := user.NewUser("Ana", "ana@email.com", "segredo1", user.RoleManager)
	require.NoError(t, err)
	require.Nil(t, u.LastAccessAt)

	u.RegisterAccess()
	require.NotNil(t, u.LastAccessAt)
}

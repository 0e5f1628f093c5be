package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrShortPassword = errors.New("a senha deve ter no mínimo 6 caracteres")
	ErrInvalidRole   = errors.New("cargo inválido")
)

// Role representa o cargo do usuário
type Role string

const (
	RoleAdmin    Role = "admin"      // Administrador do sistema
	RoleManager  Role = "gerente"    // Gerente
	RoleSalesman Role = "vendedor"   // Vendedor
	RoleStock    Role = "estoquista" // Estoquista
)

// ValidRole verifica se o cargo informado é um dos cargos aceitos
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesman, RoleStock:
		return true
	}
	return false
}

// User representa um usuário do sistema
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // Hash bcrypt, nunca serializado
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastAccessAt *time.Time `json:"last_access_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser cria um novo usuário com a senha já criptografada
func NewUser(name, email, password string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}

// SetPassword configura a senha do usuário com hash bcrypt
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrShortPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// RegisterAccess atualiza a data do último acesso
func (u *User) RegisterAccess() {
	now := time.Now()
	u.LastAccessAt = &now
	u.UpdatedAt = now
}

// IsAdmin verifica se o usuário é administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager verifica se o usuário é gerente
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

package user

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole é retornado quando um papel não pertence à hierarquia
var ErrUnknownRole = errors.New("papel desconhecido")

// Role é o nível de privilégio do usuário. A ordem numérica é a ordem de privilégio.
type Role int

const (
	RoleViewer Role = iota
	RoleManager
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = [...]string{
	RoleViewer:     "viewer",
	RoleManager:    "manager",
	RoleAdmin:      "admin",
	RoleSuperAdmin: "super_admin",
}

// Roles lista todos os papéis do menor para o maior privilégio
func Roles() []Role {
	return []Role{RoleViewer, RoleManager, RoleAdmin, RoleSuperAdmin}
}

// ParseRole converte o nome do papel. Nomes desconhecidos são rejeitados,
// nunca rebaixados silenciosamente para viewer.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return RoleViewer, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid informa se o papel pertence à hierarquia
func (r Role) Valid() bool {
	return r >= RoleViewer && r <= RoleSuperAdmin
}

// AtLeast informa se r tem privilégio igual ou superior a min
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && min.Valid() && r >= min
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// MarshalText implementa encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implementa encoding.TextUnmarshaler
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

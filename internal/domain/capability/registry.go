package capability

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

//go:embed capabilities.yaml
var defaultCatalog []byte

var (
	ErrDuplicate = errors.New("capacidade duplicada")
	ErrMissing   = errors.New("capacidade não registrada")
)

type catalogEntry struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	MinRole     string      `yaml:"min_role"`
	Write       bool        `yaml:"write"`
	Destructive bool        `yaml:"destructive"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Registry é o catálogo ordenado. Não muda depois de construído e pode ser
// lido por várias goroutines sem trava.
type Registry struct {
	ordered []Capability
	byName  map[string]int
}

// NewRegistry cria um registro a partir das capacidades na ordem dada
func NewRegistry(caps ...Capability) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(caps))}
	for _, c := range caps {
		if c.Name == "" {
			return nil, errors.New("capacidade sem nome")
		}
		if !c.MinRole.Valid() {
			return nil, fmt.Errorf("capacidade %s: %w", c.Name, user.ErrUnknownRole)
		}
		if _, exists := r.byName[c.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, c.Name)
		}
		r.byName[c.Name] = len(r.ordered)
		r.ordered = append(r.ordered, c)
	}
	return r, nil
}

// LoadRegistry interpreta um catálogo YAML
func LoadRegistry(data []byte) (*Registry, error) {
	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("erro ao ler catálogo de capacidades: %w", err)
	}

	caps := make([]Capability, 0, len(entries))
	for _, e := range entries {
		role, err := user.ParseRole(e.MinRole)
		if err != nil {
			return nil, fmt.Errorf("capacidade %s: %w", e.Name, err)
		}
		caps = append(caps, Capability{
			Name:        e.Name,
			Description: strings.TrimSpace(e.Description),
			MinRole:     role,
			Parameters:  e.Parameters,
			Write:       e.Write,
			Destructive: e.Destructive,
		})
	}
	return NewRegistry(caps...)
}

// DefaultRegistry carrega o catálogo embutido no binário
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(defaultCatalog)
}

// Lookup busca uma capacidade pelo nome
func (r *Registry) Lookup(name string) (Capability, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Capability{}, false
	}
	return r.ordered[i], true
}

// Authorize informa se o papel pode executar a capacidade.
// Nomes desconhecidos nunca são autorizados.
func (r *Registry) Authorize(name string, role user.Role) bool {
	c, ok := r.Lookup(name)
	if !ok {
		return false
	}
	return role.AtLeast(c.MinRole)
}

// ListForRole retorna, na ordem de registro, as capacidades liberadas para o papel
func (r *Registry) ListForRole(role user.Role) []Capability {
	out := make([]Capability, 0, len(r.ordered))
	for _, c := range r.ordered {
		if role.AtLeast(c.MinRole) {
			out = append(out, c)
		}
	}
	return out
}

// All retorna uma cópia do catálogo completo
func (r *Registry) All() []Capability {
	out := make([]Capability, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Require falha se algum dos nomes não estiver registrado
func (r *Registry) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	return nil
}

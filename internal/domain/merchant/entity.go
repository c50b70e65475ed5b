package merchant

import (
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

// Status representa a situação do estabelecimento
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Field identifica um atributo alterável via UpdateField
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldRegion   Field = "region"
	FieldContact  Field = "contact"
	FieldPhone    Field = "phone"
	FieldAddress  Field = "address"
	FieldDevices  Field = "devices"
	FieldStatus   Field = "status"
)

// Merchant representa um estabelecimento que opera terminais
type Merchant struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Category  string `json:"category" yaml:"category"`
	Region    string `json:"region" yaml:"region"`
	Contact   string `json:"contact" yaml:"contact"`
	Phone     string `json:"phone" yaml:"phone"`
	Address   string `json:"address" yaml:"address"`
	Devices   int    `json:"devices" yaml:"devices"`
	Status    Status `json:"status" yaml:"status"`
	Onboarded string `json:"onboarded" yaml:"onboarded"`
}

// FormatID gera o identificador MER-NNN para a sequência informada
func FormatID(seq int) string {
	return fmt.Sprintf("MER-%03d", seq)
}

// NormalizeID coloca o identificador no formato canônico
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// NewMerchant cria um estabelecimento ativo sem terminais
func NewMerchant(id, name, category, region, contact, phone, address, onboarded string) (*Merchant, error) {
	id = NormalizeID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: merchant_id é obrigatório", domain.ErrInvalidField)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name é obrigatório", domain.ErrInvalidField)
	}
	return &Merchant{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Category:  category,
		Region:    region,
		Contact:   contact,
		Phone:     phone,
		Address:   address,
		Status:    StatusActive,
		Onboarded: onboarded,
	}, nil
}

// IsActive verifica se o estabelecimento está ativo
func (m *Merchant) IsActive() bool {
	return m.Status == StatusActive
}

// Apply altera um único campo validando o tipo do valor
func (m *Merchant) Apply(field Field, value interface{}) error {
	if field == FieldDevices {
		v, ok := value.(int)
		if !ok || v < 0 {
			return fmt.Errorf("%w: valor %v inválido para %s", domain.ErrInvalidField, value, field)
		}
		m.Devices = v
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case Status:
		s = string(v)
	default:
		return fmt.Errorf("%w: valor %v (%T) inválido para %s", domain.ErrInvalidField, value, value, field)
	}

	switch field {
	case FieldName:
		m.Name = s
	case FieldCategory:
		m.Category = s
	case FieldRegion:
		m.Region = s
	case FieldContact:
		m.Contact = s
	case FieldPhone:
		m.Phone = s
	case FieldAddress:
		m.Address = s
	case FieldStatus:
		m.Status = Status(s)
	default:
		return fmt.Errorf("%w: campo desconhecido %q", domain.ErrInvalidField, field)
	}
	return nil
}

package device

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

// Status representa o estado operacional do terminal
type Status string

const (
	StatusOnline      Status = "Online"
	StatusOffline     Status = "Offline"
	StatusMaintenance Status = "Maintenance"
)

// Valid informa se o status é um dos estados conhecidos
func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusOffline, StatusMaintenance:
		return true
	}
	return false
}

// Field identifica um atributo alterável via UpdateField
type Field string

const (
	FieldName       Field = "name"
	FieldMerchantID Field = "merchant_id"
	FieldRegion     Field = "region"
	FieldStatus     Field = "status"
	FieldBattery    Field = "battery"
	FieldLastTxn    Field = "last_txn"
	FieldModel      Field = "model"
	FieldFirmware   Field = "firmware"
)

const (
	DefaultModel    = "PAX A920"
	DefaultFirmware = "v1.0.0"
	NoTransaction   = "—"
)

var idPattern = regexp.MustCompile(`^POS-\d{4}$`)

// Device representa um terminal POS
type Device struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	MerchantID string `json:"merchant_id" yaml:"merchant_id"`
	Region     string `json:"region" yaml:"region"`
	Status     Status `json:"status" yaml:"status"`
	Battery    int    `json:"battery" yaml:"battery"`
	LastTxn    string `json:"last_txn" yaml:"last_txn"`
	Model      string `json:"model" yaml:"model"`
	Firmware   string `json:"firmware" yaml:"firmware"`
}

// NormalizeID coloca o identificador no formato canônico (maiúsculas, sem espaços)
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidID informa se o identificador segue o formato POS-9999
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewDevice cria um terminal recém registrado: online, bateria cheia, sem transações
func NewDevice(id, name, merchantID, region, model string) (*Device, error) {
	id = NormalizeID(id)
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: device_id deve seguir o formato POS-1234", domain.ErrInvalidField)
	}
	if strings.TrimSpace(region) == "" {
		return nil, fmt.Errorf("%w: region é obrigatório", domain.ErrInvalidField)
	}
	if name == "" {
		name = id
	}
	if model == "" {
		model = DefaultModel
	}

	return &Device{
		ID:         id,
		Name:       name,
		MerchantID: strings.ToUpper(strings.TrimSpace(merchantID)),
		Region:     region,
		Status:     StatusOnline,
		Battery:    100,
		LastTxn:    NoTransaction,
		Model:      model,
		Firmware:   DefaultFirmware,
	}, nil
}

// IsOnline verifica se o terminal está online
func (d *Device) IsOnline() bool {
	return d.Status == StatusOnline
}

// LowBattery informa se a bateria está abaixo de 20%
func (d *Device) LowBattery() bool {
	return d.Battery < 20
}

// Apply altera um único campo validando o tipo do valor
func (d *Device) Apply(field Field, value interface{}) error {
	switch field {
	case FieldStatus:
		var st Status
		switch v := value.(type) {
		case Status:
			st = v
		case string:
			st = Status(v)
		}
		if !st.Valid() {
			return fieldTypeError(field, value)
		}
		d.Status = st
	case FieldBattery:
		v, ok := value.(int)
		if !ok || v < 0 || v > 100 {
			return fieldTypeError(field, value)
		}
		d.Battery = v
	case FieldName, FieldMerchantID, FieldRegion, FieldLastTxn, FieldModel, FieldFirmware:
		v, ok := value.(string)
		if !ok {
			return fieldTypeError(field, value)
		}
		switch field {
		case FieldName:
			d.Name = v
		case FieldMerchantID:
			d.MerchantID = v
		case FieldRegion:
			d.Region = v
		case FieldLastTxn:
			d.LastTxn = v
		case FieldModel:
			d.Model = v
		case FieldFirmware:
			d.Firmware = v
		}
	default:
		return fmt.Errorf("%w: campo desconhecido %q", domain.ErrInvalidField, field)
	}
	return nil
}

func fieldTypeError(field Field, value interface{}) error {
	return fmt.Errorf("%w: valor %v (%T) inválido para %s", domain.ErrInvalidField, value, value, field)
}

// Filter restringe a listagem de terminais. Campos vazios não filtram.
type Filter struct {
	Region     string
	Status     Status
	MerchantID string
}

// Match informa se o terminal passa no filtro
func (f Filter) Match(d *Device) bool {
	if f.Region != "" && !strings.EqualFold(f.Region, d.Region) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(f.Status), string(d.Status)) {
		return false
	}
	if f.MerchantID != "" && !strings.EqualFold(f.MerchantID, d.MerchantID) {
		return false
	}
	return true
}

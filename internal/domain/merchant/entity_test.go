package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

func TestNewMerchant(t *testing.T) {
	m, err := NewMerchant(" mer-005", "Chai Point ", "Restaurant", "Delhi", "Neha", "", "", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "MER-005", m.ID)
	assert.Equal(t, "Chai Point", m.Name)
	assert.True(t, m.IsActive())
	assert.Zero(t, m.Devices)

	_, err = NewMerchant("", "x", "", "", "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	_, err = NewMerchant("MER-009", " ", "", "", "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "MER-005", FormatID(5))
	assert.Equal(t, "MER-1200", FormatID(1200))
}

func TestApply(t *testing.T) {
	m := &Merchant{ID: "MER-001"}
	require.NoError(t, m.Apply(FieldDevices, 3))
	require.NoError(t, m.Apply(FieldStatus, StatusInactive))
	require.NoError(t, m.Apply(FieldPhone, "+91-1"))
	assert.Equal(t, 3, m.Devices)
	assert.Equal(t, StatusInactive, m.Status)
	assert.Equal(t, "+91-1", m.Phone)

	assert.ErrorIs(t, m.Apply(FieldDevices, -1), domain.ErrInvalidField)
	assert.ErrorIs(t, m.Apply(FieldName, 1), domain.ErrInvalidField)
	assert.ErrorIs(t, m.Apply(Field("tax_id"), "x"), domain.ErrInvalidField)
}

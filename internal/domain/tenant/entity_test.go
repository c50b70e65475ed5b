package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

func TestApply(t *testing.T) {
	tn := &Tenant{ID: "tenant-003", Region: "SEA", Status: StatusSuspended}

	require.NoError(t, tn.Apply(Patch{Status: "ACTIVE"}))
	assert.True(t, tn.IsActive())
	assert.Equal(t, "SEA", tn.Region)

	require.NoError(t, tn.Apply(Patch{Region: " APAC "}))
	assert.Equal(t, "APAC", tn.Region)

	err := tn.Apply(Patch{Status: "deleted"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.True(t, tn.IsActive())
}

func TestSuspend(t *testing.T) {
	tn := &Tenant{Status: StatusActive}
	tn.Suspend()
	assert.False(t, tn.IsActive())
	tn.Activate()
	assert.True(t, tn.IsActive())
}

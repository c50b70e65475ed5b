package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,085", groupDigits(1085))
	assert.Equal(t, "1,458,000", groupDigits(1458000))
	assert.Equal(t, "-12,000", groupDigits(-12000))
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹485,000", rupees(485000))
	assert.Equal(t, "₹2,250.00", rupeesCents(2250))
	assert.Equal(t, "₹920.50", rupeesCents(920.5))
}

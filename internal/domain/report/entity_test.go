package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	got := Sum([]RegionSummary{
		{Region: "Mumbai", Count: 342, Volume: 485000},
		{Region: "Delhi", Count: 289, Volume: 372000},
	})
	assert.Equal(t, 631, got.Count)
	assert.Equal(t, int64(857000), got.Volume)
	assert.Equal(t, int64(1358), got.Average)

	assert.Equal(t, Totals{}, Sum(nil))
}

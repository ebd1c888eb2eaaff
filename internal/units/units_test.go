package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/units"
)

func TestCLight(t *testing.T) {
	assert.InDelta(t, 299.792458, units.CLight, 1e-9)
}

func TestTimeToLength(t *testing.T) {
	assert.Equal(t, 0.0, units.TimeToLength(0))
	assert.InDelta(t, 299.792458, units.TimeToLength(1), 1e-9)
	assert.InDelta(t, -2*299.792458, units.TimeToLength(-2), 1e-9)
}

func TestCentimeter(t *testing.T) {
	assert.Equal(t, 10.0, 1*units.Centimeter)
}

package stars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoonIllumination(t *testing.T) {
	assert.Equal(t, 0.0, MoonIllumination(0))   // new moon
	assert.Equal(t, 1.0, MoonIllumination(0.5)) // full moon
	assert.Equal(t, 0.5, MoonIllumination(0.25))
	assert.Equal(t, 0.5, MoonIllumination(0.75))
	assert.Equal(t, 0.0, MoonIllumination(1))
}

func TestMoonIllumination_ClampsOutOfRangePhase(t *testing.T) {
	assert.Equal(t, 0.0, MoonIllumination(-0.2))
	assert.Equal(t, 0.0, MoonIllumination(1.3))
}

package langsupport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaturityLevel_Names(t *testing.T) {
	assert.Equal(t, "Actively Tested", MaturityActivelyTested.DisplayName())
	assert.Equal(t, "◐", MaturityBasicTests.Symbol())
	assert.Equal(t, "✓ Stable", MaturityStable.String())
}

func TestMaturityLevel_Unknown(t *testing.T) {
	level := MaturityLevel(42)

	assert.Equal(t, "Unknown", level.DisplayName())
	assert.Equal(t, "?", level.Symbol())
}

func TestMaturityLevels_Ordered(t *testing.T) {
	levels := MaturityLevels()

	assert.Len(t, levels, 4)
	assert.Equal(t, MaturityUntested, levels[0])
	assert.Equal(t, MaturityStable, levels[len(levels)-1])
}

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationEstimate_PlainNumber(t *testing.T) {
	assert.Equal(t, 45, ParseDurationEstimate("45", 10))
}

func TestParseDurationEstimate_NumberInSentence(t *testing.T) {
	assert.Equal(t, 30, ParseDurationEstimate("Estimated duration: 30 minutes", 10))
}

func TestParseDurationEstimate_FirstNumberWins(t *testing.T) {
	assert.Equal(t, 20, ParseDurationEstimate("Between 20 and 40 minutes", 10))
}

func TestParseDurationEstimate_ClampsHigh(t *testing.T) {
	assert.Equal(t, 180, ParseDurationEstimate("500 minutes", 10))
}

func TestParseDurationEstimate_ClampsLow(t *testing.T) {
	assert.Equal(t, 1, ParseDurationEstimate("0 minutes", 10))
}

func TestParseDurationEstimate_FallbackScalesWithCount(t *testing.T) {
	assert.Equal(t, 30, ParseDurationEstimate("roughly half an hour", 10))
}

func TestParseDurationEstimate_FallbackMinimum(t *testing.T) {
	assert.Equal(t, 5, ParseDurationEstimate("", 1))
}

func TestParseDurationEstimate_FallbackMaximum(t *testing.T) {
	assert.Equal(t, 60, ParseDurationEstimate("no idea", 50))
}

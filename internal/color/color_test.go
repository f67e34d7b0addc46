package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewColor(t *testing.T) {
	red := NewColor("\033[31m")
	assert.Equal(t, "\033[31mERROR\033[0m", red("ERROR"))
}

func TestPredefinedColors(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		code  string
	}{
		{"bold", Bold, boldCode},
		{"gray", Gray, grayCode},
		{"green", Green, greenCode},
		{"yellow", Yellow, yellowCode},
		{"red", Red, redCode},
		{"cyan", Cyan, cyanCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code+"x"+resetCode, tt.color("x"))
		})
	}
}

func TestNewPalette(t *testing.T) {
	t.Run("disabled leaves text untouched", func(t *testing.T) {
		p := NewPalette(false)
		for _, c := range []Color{p.Success, p.Label, p.Value, p.Gain, p.Muted} {
			assert.Equal(t, "42 bytes", c("42 bytes"))
		}
	})

	t.Run("enabled colors headline and values", func(t *testing.T) {
		p := NewPalette(true)
		assert.Equal(t, Green("ok"), p.Success("ok"))
		assert.Equal(t, Bold("42"), p.Value("42"))
		assert.Contains(t, p.Gain("7 bytes"), "\033[")
	})
}

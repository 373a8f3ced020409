package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontSize(t *testing.T) {
	f := DefaultFontSize

	f = f.Increase()
	assert.Equal(t, FontSize(17), f)

	f = f.Decrease()
	assert.Equal(t, FontSize(16), f)

	assert.Equal(t, MinFontSize, FontSize(1).Decrease())
	assert.Equal(t, FontSize(1), FontSize(-4).Clamp())

	f = FontSize(3).Decrease().Decrease().Decrease().Increase()
	assert.Equal(t, FontSize(2), f)
	assert.Equal(t, DefaultFontSize, f.Reset())
}

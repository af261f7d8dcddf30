package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchInput_Value(t *testing.T) {
	s := NewSearchInput(nil)

	assert.Empty(t, s.Value())

	s.SetValue("clause de non-concurrence")
	assert.Equal(t, "clause de non-concurrence", s.Value())

	s.Reset()
	assert.Empty(t, s.Value())
}

func TestSearchInput_Focus(t *testing.T) {
	s := NewSearchInput(nil)
	assert.True(t, s.Focused())

	s.Blur()
	assert.False(t, s.Focused())

	s.Focus()
	assert.True(t, s.Focused())
}

func TestSearchInput_SetWidth(t *testing.T) {
	s := NewSearchInput(nil)

	s.SetWidth(100)
	assert.Equal(t, 100, s.Width())

	// Never shrinks below a usable minimum
	s.SetWidth(5)
	assert.Equal(t, 5, s.Width())
}

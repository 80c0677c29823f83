package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climblog/internal/ui/components"
)

func typeText(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteMatchesByPrefix(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	assert.Len(t, p.Matches(), 5)

	p = typeText(p, "session:")
	assert.Equal(t, []string{"session:end <fatigue>", "session:cancel"}, p.Matches())
}

func TestPaletteTabCompletesFirstMatch(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeText(p, "gyms:s")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeText(p, "north")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, p.Visible())
	assert.Equal(t, components.PaletteSubmitMsg{Input: "gyms:select north"}, cmd())
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, p.Visible())
	assert.Equal(t, components.PaletteCancelMsg{}, cmd())
}

func TestClosedPaletteIgnoresKeys(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, p.View())
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func newLab(t *testing.T, scene string) model {
	t.Helper()
	m, err := NewLab(config.GetPreset(scene, config.DefaultPreset(scene)), nil)
	require.NoError(t, err)
	t.Cleanup(m.close)
	return *m
}

func TestLabAdjust(t *testing.T) {
	m := newLab(t, config.SceneSingle)

	// k, F: one 1% step of the 200 N force range.
	m = press(t, m, "down", "right")
	assert.Equal(t, "F", m.current().Name)
	f, _ := m.scene.Get("F")
	x, _ := m.scene.Get("x")
	assert.Equal(t, 2.0, f)
	assert.InDelta(t, 0.01, x, 1e-12)
	assert.NoError(t, m.err)

	m = press(t, m, "r")
	f, _ = m.scene.Get("F")
	assert.Equal(t, 0.0, f)
}

func TestLabAdjustClamps(t *testing.T) {
	m := newLab(t, config.SceneSingle)
	m = press(t, m, "down", "]", "]", "]")
	for i := 0; i < 20; i++ {
		m = press(t, m, "right")
	}
	f, _ := m.scene.Get("F")
	assert.Equal(t, 100.0, f)
	assert.NoError(t, m.err)
}

func TestLabEdit(t *testing.T) {
	m := newLab(t, config.SceneSeries)

	m = press(t, m, "enter")
	assert.True(t, m.editing)
	assert.Equal(t, "200", m.editBuf)

	m = press(t, m, "backspace", "backspace", "backspace", "3", "0", "0", "enter")
	assert.False(t, m.editing)
	k, _ := m.scene.Get("k")
	assert.InDelta(t, 120, k, 1e-9)
}

func TestLabEditOutOfRange(t *testing.T) {
	m := newLab(t, config.SceneSeries)

	m = press(t, m, "down", "down", "enter", "backspace", "9", "9", "9", "enter")
	assert.ErrorIs(t, m.err, reactive.ErrRangeViolation)
	assert.Contains(t, m.View(), "range")
}

func TestLabCursorBounds(t *testing.T) {
	m := newLab(t, config.SceneParallel)

	m = press(t, m, "up")
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 10; i++ {
		m = press(t, m, "down")
	}
	assert.Equal(t, "arm", m.current().Name)
}

func TestLabSwitchScene(t *testing.T) {
	m := newLab(t, config.SceneParallel)
	assert.Equal(t, config.SceneParallel, m.scene.Name())

	m = press(t, m, "down", "tab")
	assert.Equal(t, config.SceneSeries, m.scene.Name())
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, "tab")
	assert.Equal(t, config.SceneSingle, m.scene.Name())
	m = press(t, m, "tab")
	assert.Equal(t, config.SceneParallel, m.scene.Name())
}

func TestLabView(t *testing.T) {
	m := newLab(t, config.SceneSeries)
	view := m.View()

	assert.Contains(t, view, "springlab")
	assert.Contains(t, view, "k1")
	assert.Contains(t, view, "arm")
	assert.Contains(t, view, "E2=")
}

func TestLabEnergyTrace(t *testing.T) {
	m := newLab(t, config.SceneSingle)
	assert.Equal(t, []float64{0}, m.energy.points)
	assert.NotContains(t, m.View(), "energy (J)")

	m = press(t, m, "down", "right")
	e, _ := m.scene.Get("E")
	assert.InDelta(t, 0.01, e, 1e-12)
	assert.Equal(t, []float64{0, e}, m.energy.points)
	assert.Contains(t, m.View(), "energy (J)")

	m = press(t, m, "r")
	assert.Equal(t, []float64{0, e, 0}, m.energy.points)

	prev := m.energy
	m = press(t, m, "tab")
	assert.NotSame(t, prev, m.energy)
	assert.Len(t, m.energy.points, 1)
}

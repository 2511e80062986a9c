package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/experiment"
	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/viz"
)

// Step fractions of a quantity's range applied per left/right key press.
var steps = []float64{0.001, 0.01, 0.05, 0.1}

// traceLen is the number of energy readings kept for the plot.
const traceLen = 60

// trace records the scene's energy each time the force or displacement
// settles on a new value. It is shared by every copy of the model.
type trace struct {
	link   *reactive.Multilink
	points []float64
}

func watchEnergy(scene *experiment.Scene) (*trace, error) {
	tr := &trace{}
	energy, err := scene.Quantity("E")
	if err != nil {
		return nil, err
	}
	tr.link, err = scene.Watch(func() {
		e := energy.Property.Get()
		if n := len(tr.points); n > 0 && tr.points[n-1] == e {
			return
		}
		tr.points = append(tr.points, e)
		if len(tr.points) > traceLen {
			tr.points = tr.points[len(tr.points)-traceLen:]
		}
	}, "F", "x", "E")
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (tr *trace) unlink() {
	if tr != nil && tr.link != nil {
		tr.link.Unlink()
	}
}

type model struct {
	registry *experiment.Registry
	logger   *slog.Logger

	scenes   []string
	sceneIdx int
	scene    *experiment.Scene
	energy   *trace

	// cursor indexes writable quantities only.
	cursor  int
	stepIdx int
	editing bool
	editBuf string
	err     error

	theme  viz.Theme
	width  int
	height int
}

// NewLab builds the first scene from cfg. Switching scenes later uses each
// scene's default preset.
func NewLab(cfg *config.Config, logger *slog.Logger) (*model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := experiment.NewRegistry()
	scene, err := r.Build(cfg, logger)
	if err != nil {
		return nil, err
	}
	energy, err := watchEnergy(scene)
	if err != nil {
		scene.Dispose()
		return nil, err
	}
	m := &model{
		registry: r,
		logger:   logger,
		scenes:   r.ListScenes(),
		scene:    scene,
		energy:   energy,
		stepIdx:  1,
		theme:    viz.ThemeCyberpunk,
		width:    80,
		height:   24,
	}
	for i, name := range m.scenes {
		if name == cfg.Scene {
			m.sceneIdx = i
		}
	}
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) writable() []experiment.Quantity {
	var out []experiment.Quantity
	for _, q := range m.scene.Quantities() {
		if q.Writable {
			out = append(out, q)
		}
	}
	return out
}

func (m model) current() experiment.Quantity {
	return m.writable()[m.cursor]
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.close()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.writable())-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "[":
		if m.stepIdx > 0 {
			m.stepIdx--
		}
	case "]":
		if m.stepIdx < len(steps)-1 {
			m.stepIdx++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.current().Property.Get(), 'g', 6, 64)
	case "r":
		m.scene.Reset()
		m.err = nil
	case "t":
		m.theme = viz.NextTheme(m.theme)
	case "tab":
		m.switchScene((m.sceneIdx + 1) % len(m.scenes))
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		v, err := strconv.ParseFloat(m.editBuf, 64)
		m.editBuf = ""
		if err != nil {
			m.err = err
			return m, nil
		}
		m.write(m.current().Name, v, false)
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m *model) adjust(dir float64) {
	q := m.current()
	r := q.Range()
	m.write(q.Name, q.Property.Get()+dir*steps[m.stepIdx]*r.Length(), true)
}

func (m *model) write(name string, v float64, clamp bool) {
	var err error
	if clamp {
		err = m.scene.SetClamped(name, v)
	} else {
		err = m.scene.Set(name, v)
	}
	m.err = err
	if err != nil {
		m.logger.Debug("write rejected", "quantity", name, "value", v, "err", err)
	}
}

func (m *model) switchScene(idx int) {
	name := m.scenes[idx]
	scene, err := m.registry.Build(config.GetPreset(name, config.DefaultPreset(name)), m.logger)
	if err != nil {
		m.err = err
		return
	}
	energy, err := watchEnergy(scene)
	if err != nil {
		scene.Dispose()
		m.err = err
		return
	}
	m.close()
	m.scene = scene
	m.energy = energy
	m.sceneIdx = idx
	m.cursor = 0
	m.err = nil
}

// close releases the energy trace and the scene.
func (m *model) close() {
	m.energy.unlink()
	m.scene.Dispose()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n  " + viz.Title.Render("springlab") + "  " + viz.Subtle.Render(m.scene.Name()) + "\n")
	b.WriteString("  " + viz.Separator(m.width-4) + "\n\n")

	arm, _ := m.scene.Quantity("arm")
	armRange := arm.Range()
	lo := m.scene.Spans()[0].Left
	hi := armRange.Max
	for _, line := range strings.Split(strings.TrimRight(viz.Diagram(m.scene.Spans(), arm.Property.Get(), lo, hi, m.width-8, m.theme), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	for i, q := range m.writable() {
		r := q.Range()
		val := fmt.Sprintf("%10.4f", q.Property.Get())
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		label := fmt.Sprintf("%-6s", q.Name)
		bar := viz.RangeBar(q.Property.Get(), r.Min, r.Max, 20)
		if i == m.cursor {
			b.WriteString("  " + viz.Selected.Render("▸ "+label) + viz.MetricValue.Render(val) + " " + bar + " " + viz.Subtle.Render(q.Unit) + "\n")
		} else {
			b.WriteString("    " + viz.MetricLabel.Render(label) + viz.MetricLabel.Render(val) + " " + bar + " " + viz.Subtle.Render(q.Unit) + "\n")
		}
	}

	b.WriteString("\n")
	var derived []string
	for _, q := range m.scene.Quantities() {
		if !q.Writable {
			derived = append(derived, viz.ReadOnly.Render(q.Name+"=")+viz.MetricValue.Render(fmt.Sprintf("%.4g", q.Property.Get())))
		}
	}
	b.WriteString("  " + strings.Join(derived, "  ") + "\n")

	if len(m.energy.points) > 1 {
		b.WriteString("\n")
		plot := viz.Plot(m.energy.points, "energy (J)", m.width-16, 4)
		for _, line := range strings.Split(plot, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n  " + viz.ErrorText.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + viz.KeyHint.Render(fmt.Sprintf(
		"  ↑↓ select  ←→ adjust  [] step %g%%  enter edit  r reset  tab scene  t theme  q quit",
		steps[m.stepIdx]*100)) + "\n")
	return b.String()
}

func RunLab(cfg *config.Config, logger *slog.Logger) error {
	m, err := NewLab(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

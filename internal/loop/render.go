package loop

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/draw"
	"github.com/tomz197/moonshot/internal/object"
)

// hudRows is the number of terminal rows reserved above the play-field.
const hudRows = 1

// lowTimer is the countdown value from which the timer is highlighted.
const lowTimer = 10

// HUD is the scalar state drawn next to the shapes.
type HUD struct {
	Timer     int // Seconds left
	Remaining int // Active particles
	Total     int // Particles the round started with
	Outcome   object.Outcome
}

//go:generate go tool mockgen -destination=./mocks/renderer_mock.go -package=mocks . Renderer

// Renderer is the sink a frame is drawn into.
type Renderer interface {
	Begin()
	Shape(s object.Shape)
	HUD(h HUD)
	Flush() error
}

// Render draws one frame of g into r.
func Render(r Renderer, g *Game) error {
	r.Begin()
	for s := range g.Shapes() {
		r.Shape(s)
	}
	r.HUD(g.HUD())
	return r.Flush()
}

// hudStyles holds the lipgloss styles of the overlay.
type hudStyles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	alert  lipgloss.Style
	won    lipgloss.Style
	lost   lipgloss.Style
	hint   lipgloss.Style
	banner lipgloss.Style
}

func newHUDStyles(lg *lipgloss.Renderer) hudStyles {
	return hudStyles{
		title:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#ccc")),
		text:   lg.NewStyle().Foreground(lipgloss.Color("#ccc")),
		alert:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#f00")),
		won:    lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0")),
		lost:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#f00")),
		hint:   lg.NewStyle().Faint(true),
		banner: lg.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4).Align(lipgloss.Center),
	}
}

// TerminalRenderer draws frames on a scaled half-block canvas fitted into
// the terminal, with a one-line HUD above it and a banner once the round
// is over.
type TerminalRenderer struct {
	out      *draw.ChunkWriter
	canvas   *draw.Canvas
	sizeFunc draw.TermSizeFunc
	styles   hudStyles
	label    string

	termW, termH int
	layout       draw.Layout
	hud          HUD
}

// NewTerminalRenderer creates a renderer writing to w. sizeFunc reports
// the terminal size; lg styles the HUD and decides the color profile of
// the canvas. label names the difficulty in the HUD.
func NewTerminalRenderer(w io.Writer, sizeFunc draw.TermSizeFunc, lg *lipgloss.Renderer, label string) *TerminalRenderer {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	if lg == nil {
		lg = lipgloss.NewRenderer(w)
	}
	canvas := draw.NewScaledCanvas(1, 1, config.FieldWidth, config.FieldHeight)
	canvas.SetProfile(lg.ColorProfile())
	return &TerminalRenderer{
		out:      draw.NewChunkWriter(w),
		canvas:   canvas,
		sizeFunc: sizeFunc,
		styles:   newHUDStyles(lg),
		label:    label,
	}
}

// Begin checks the terminal size and clears the canvas.
func (t *TerminalRenderer) Begin() {
	if w, h, err := t.sizeFunc(); err == nil && (w != t.termW || h != t.termH) {
		t.termW, t.termH = w, h
		t.layout = draw.Fit(w, h, config.FieldWidth, config.FieldHeight, hudRows)
		t.canvas.Resize(t.layout.Cols, t.layout.Rows)
		t.canvas.SetOffset(t.layout.OffsetCol, t.layout.OffsetRow)
	}
	t.canvas.Clear()
}

// Shape draws s on the canvas.
func (t *TerminalRenderer) Shape(s object.Shape) {
	t.canvas.SetColor(s.Color)
	switch s.Kind {
	case object.ShapeCircle:
		t.canvas.FillCircle(s.X, s.Y, s.Size)
	case object.ShapeTriangle:
		v := s.Vertices()
		t.canvas.DrawPolygon(v[:], true)
	}
}

// HUD records the overlay state for Flush.
func (t *TerminalRenderer) HUD(h HUD) {
	t.hud = h
}

// Flush writes the whole frame to the terminal.
func (t *TerminalRenderer) Flush() error {
	draw.ClearScreen(t.out)
	if err := t.canvas.RenderBorder(t.out); err != nil {
		return err
	}
	if err := t.canvas.Render(t.out); err != nil {
		return err
	}
	t.writeStatus()
	if t.hud.Outcome.Terminal() {
		t.writeBanner()
	}
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// writeStatus writes the HUD line: difficulty, timer and moon size.
func (t *TerminalRenderer) writeStatus() {
	timer := fmt.Sprintf("%d:%02d", t.hud.Timer/60, t.hud.Timer%60)
	timerStyle := t.styles.text
	if t.hud.Timer <= lowTimer {
		timerStyle = t.styles.alert
	}

	left := t.styles.title.Render("MOONSHOT " + strings.ToUpper(t.label))
	center := timerStyle.Render(timer)
	right := t.styles.text.Render(fmt.Sprintf("Moon %d/%d", t.hud.Remaining, t.hud.Total))

	t.out.WriteAt(1, 1, left)
	t.out.WriteAt(max((t.termW-lipgloss.Width(center))/2, 1), 1, center)
	t.out.WriteAt(max(t.termW-lipgloss.Width(right)+1, 1), 1, right)
}

// writeBanner draws the outcome box centered over the canvas.
func (t *TerminalRenderer) writeBanner() {
	var title string
	switch t.hud.Outcome {
	case object.Won:
		title = t.styles.won.Render("MOON DESTROYED")
	default:
		title = t.styles.lost.Render("TIME'S UP")
	}
	hint := t.styles.hint.Render("r restart  q quit")
	box := t.styles.banner.Render(lipgloss.JoinVertical(lipgloss.Center, title, "", hint))

	lines := strings.Split(box, "\n")
	midCol := t.canvas.OffsetCol() + t.canvas.TerminalWidth()/2 + 1
	midRow := t.canvas.OffsetRow() + t.canvas.TerminalHeight()/2 + 1
	top := max(midRow-len(lines)/2, 1)
	for i, line := range lines {
		col := max(midCol-lipgloss.Width(line)/2, 1)
		t.out.WriteAt(col, top+i, line)
	}
}

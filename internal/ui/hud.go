//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"ca-arena/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the side panel: parameter groups with clickable boolean
// toggles, followed by free-form lines supplied by the viewer.
type HUD struct {
	width      int
	title      string
	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	setter   core.BoolParameterSetter
	snapshot core.ParameterSnapshot
	lines    []Line
	toggles  []toggle

	panelOffsetX int
}

type toggle struct {
	key  string
	on   bool
	rect image.Rectangle
}

// NewHUD constructs a HUD of the given width. setter may be nil, in which
// case toggles are drawn but not clickable.
func NewHUD(title string, width int, setter core.BoolParameterSetter) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, title: title, setter: setter}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update stores the latest snapshot and lines and handles toggle clicks.
func (h *HUD) Update(panelOffsetX int, snap core.ParameterSnapshot, lines []Line) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = snap
	h.lines = lines
	h.layout()
	h.handleInput()
}

func (h *HUD) layout() {
	h.toggles = h.toggles[:0]
	y := controlsTop
	for _, g := range h.snapshot.Groups {
		y += lineHeight
		for _, p := range g.Params {
			if p.Type == core.ParamTypeBool {
				on, _ := strconv.ParseBool(p.Value)
				rect := image.Rect(h.width-panelPadding-buttonWidth, y, h.width-panelPadding, y+buttonHeight)
				h.toggles = append(h.toggles, toggle{key: p.Key, on: on, rect: rect})
			}
			y += lineHeight
		}
	}
}

func (h *HUD) handleInput() {
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for _, t := range h.toggles {
		if pointInRect(px, my, t.rect) {
			h.setter.SetBoolParameter(t.key, !t.on)
			return
		}
	}
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)

	y := controlsTop
	ti := 0
	for _, g := range h.snapshot.Groups {
		text.Draw(h.panel, strings.ToUpper(g.Name), face, panelPadding, y+labelBaseline, dimColor)
		y += lineHeight
		for _, p := range g.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y+labelBaseline, textColor)
			if p.Type == core.ParamTypeBool && ti < len(h.toggles) {
				h.drawToggle(h.toggles[ti])
				ti++
			} else {
				bounds := text.BoundString(face, p.Value)
				text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y+labelBaseline, textColor)
			}
			y += lineHeight
		}
	}

	y += lineHeight / 2
	for _, l := range h.lines {
		x := panelPadding
		if l.Swatch != nil {
			h.fill(image.Rect(x, y+swatchTop, x+swatchSize, y+swatchTop+swatchSize), *l.Swatch)
			x += swatchSize + buttonGap
		}
		text.Draw(h.panel, l.Text, face, x, y+labelBaseline, textColor)
		y += smallLine
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawToggle(t toggle) {
	bg := color.RGBA{R: 32, G: 34, B: 40, A: 255}
	label := "OFF"
	if t.on {
		bg = color.RGBA{R: 0, G: 120, B: 70, A: 255}
		label = "ON"
	}
	if h.setter == nil {
		bg = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	}
	h.fill(t.rect, bg)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := t.rect.Min.X + (t.rect.Dx()-bounds.Dx())/2
	y := t.rect.Min.Y + (t.rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, textColor)
}

func (h *HUD) fill(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	h.panel.DrawImage(h.pixel, op)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 22
	smallLine      = 16
	buttonWidth    = 40
	buttonHeight   = 18
	buttonGap      = 6
	swatchSize     = 10
	swatchTop      = 4
	headerBaseline = 18
	labelBaseline  = 14
	controlsTop    = panelPadding + headerBaseline + 10
)

// Package render turns arena cells into pixels.
package render

import (
	"hash/fnv"
	"image/color"
	"math"

	"ca-arena/internal/grid"
)

var (
	// Background fills cells in state 0 and inert cells.
	Background = color.RGBA{R: 17, G: 17, B: 17, A: 255}
	// AntColor marks turmites.
	AntColor = color.RGBA{R: 255, A: 255}
	// Missing is used for a state a rule's palette does not list.
	Missing = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// colors lists each rule's state colours, starting at state 1.
var colors = map[string][]uint32{
	"gameoflife":       {0x00ff00},
	"rule30":           {0xff0000},
	"rule110":          {0x0000ff},
	"rule90":           {0xffff00},
	"langton":          {0x000000},
	"brain":            {0xff0000, 0xffff00},
	"seeds":            {0xffff00},
	"wireworld":        {0xffa500, 0x0000ff, 0xff0000},
	"forestfire":       {0x00ff00, 0xff0000},
	"maze":             {0x000000},
	"highlife":         {0x00ff88},
	"daynight":         {0x4169e1},
	"replicator":       {0xff1493},
	"lifewithoutdeath": {0x32cd32},
	"twobytwo":         {0xff6347},
	"morley":           {0x9370db},
	"vote":             {0x1e90ff},
	"coral":            {0xff7f50},
	"cyclic":           {0xff0000, 0x00ff00, 0x0000ff, 0xffff00},
	"anneal":           {0xffd700},
	"rule54":           {0xff69b4},
	"rule60":           {0x00ced1},
	"rule102":          {0xff4500},
	"rule126":          {0x9932cc},
	"rule150":          {0x228b22},
	"rule184":          {0xdc143c},
	"rule190":          {0x00bfff},
	"rule250":          {0xffa500},
	"generations":      {0xff0000, 0xffff00},
	"starwars":         {0xff0000, 0xffff00, 0xff8c00},
	"diamoeba":         {0x40e0d0},
	"gnarl":            {0x8b008b},
	"dotlife":          {0x00ff7f},
	"pedestrian":       {0x4682b4},
	"stains":           {0x8b4513},
	"coagulations":     {0xcd5c5c},
	"worms":            {0x9acd32},
	"bugs":             {0xff6347},
	"bbm":              {0xffd700},
	"hppgas":           {0x87ceeb, 0x4169e1, 0x0000cd, 0x191970},
	"critters":         {0xff1493},
	"stringthing":      {0xdda0dd},
	"swapdiag":         {0x20b2aa},
	"tron":             {0x00ffff},
	"sand":             {0xf4a460},
	"bouncygas":        {0xff69b4, 0xff1493, 0xc71585, 0x8b008b},
	"liquid":           {0x4169e1},
	"crystal":          {0xe0e0e0, 0xc0c0c0, 0xa0a0a0},
	"plasma":           {0xff00ff, 0xff69b4, 0xff1493, 0xc71585},
	"fabric":           {0x8b4513, 0xdaa520, 0xcd853f},
	"neural":           {0x9370db, 0x8a2be2, 0x9932cc, 0x8b008b},
	"quantum":          {0x00ffff, 0x40e0d0, 0x48d1cc, 0x20b2aa},
	"magnetic":         {0xff0000, 0x0000ff},
	"gravity":          {0xffd700},
	"chemistry":        {0xff0000, 0x00ff00, 0x0000ff},
	"ecosystem":        {0x00ff00, 0xff0000},
	"music":            {0xff0000, 0xff8000, 0xffff00, 0x00ff00},
	"fractal":          {0xff0000, 0xff8000, 0xffff00, 0x00ff00},
	"kaleidoscope":     {0xff0080, 0x8000ff, 0x00ff80, 0xff8000},
	"aurora":           {0x00ff7f, 0x00ffff, 0x9370db, 0xff69b4},
	"lightning":        {0xffff00, 0xffffff, 0xe6e6fa, 0xf0f8ff},
	"virus":            {0x8b0000},
	"bacteria":         {0x228b22},
	"mitosis":          {0xff1493},
	"cancer":           {0x4b0082},
	"slimemold":        {0xdaa520},
	"antcolony":        {0x8b4513, 0xcd853f, 0xf4a460},
	"flocking":         {0x87ceeb},
	"schooling":        {0x4682b4},
	"mycelium":         {0xf5deb3},
	"evolution":        {0xff6347, 0xff7f50, 0xffa500, 0xff4500},
	"dna":              {0xff0000, 0x00ff00, 0x0000ff, 0xffff00},
	"immune":           {0xdc143c, 0x00ff00, 0x0000ff, 0xffff00},
	"neuron":           {0x9370db},
	"roots":            {0x8b4513},
	"algae":            {0x00ff7f},
}

// Color returns the colour of a rule's cell in state. State 0 is background.
// Rules without a palette get a hue derived from their name; states beyond a
// rule's palette are drawn in Missing.
func Color(rule string, state uint8) color.RGBA {
	if state == 0 {
		return Background
	}
	list, ok := colors[rule]
	if !ok {
		return hashed(rule, state)
	}
	if int(state) > len(list) {
		return Missing
	}
	return hex(list[state-1])
}

// Base is the state-1 colour of a rule, used for legends and charts.
func Base(rule string) color.RGBA { return Color(rule, 1) }

// hashed spreads unknown rules around the hue circle and darkens higher states.
func hashed(rule string, state uint8) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(rule))
	hue := float64(h.Sum32()%360) / 360
	v := math.Max(0.35, 1-0.15*float64(state-1))
	return hsv(hue, 0.8, v)
}

func hsv(h, s, v float64) color.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p, q, t := v*(1-s), v*(1-f*s), v*(1-(1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// Names resolves rule ids to names.
type Names interface {
	Name(id grid.RuleID) string
	Len() int
}

// LUT is a colour table indexed by rule id then state.
type LUT [][256]color.RGBA

// NewLUT precomputes colours for every registered rule.
func NewLUT(reg Names) LUT {
	lut := make(LUT, reg.Len()+1)
	for id := 1; id < len(lut); id++ {
		name := reg.Name(grid.RuleID(id))
		for s := 0; s < 256; s++ {
			lut[id][s] = Color(name, uint8(s))
		}
	}
	for s := range lut[0] {
		lut[0][s] = Background
	}
	return lut
}

// At returns the colour of a cell; unknown ids are drawn as Missing when live.
func (l LUT) At(c grid.Cell) color.RGBA {
	if c.State == 0 || !c.Active() {
		return Background
	}
	if int(c.Rule) >= len(l) {
		return Missing
	}
	return l[c.Rule][c.State]
}

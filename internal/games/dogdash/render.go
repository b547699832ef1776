package dogdash

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dogdash/internal/core"
)

// Terminal sprites. Every sprite is one block wide (4 cells) and two rows tall.
var (
	spriteSpike = [2]string{" /\\ ", "/__\\"}
	spriteBlock = [2]string{"▛▀▀▜", "▙▄▄▟"}
	spritePad   = [2]string{" ⌃⌃ ", "▂▆▆▂"}
	spriteDog   = [2]string{"ʌ▀▀ʌ", "(••)"}
	spriteJump  = [2]string{"ʌ▀▀ʌ", "(°°)"}
	spriteDead  = [2]string{"ʌ▀▀ʌ", "(××)"}
)

const (
	GroundChar = '═'
	DirtChar   = '░'
	EdgeChar   = '▚'
	FinishChar = '┃'
	FlagChar   = '⚑'
)

// view maps world pixels to screen cells: one block is four cells wide and
// two rows tall, and the ground line sits a fixed number of rows above the
// bottom of the screen.
type view struct {
	cam       float64
	cellW     float64
	cellH     float64
	groundY   float64
	groundRow int
}

func (g *Game) view(dst *core.Screen) view {
	bs := g.cfg.World.BlockSize
	v := view{
		cam:     g.session.Camera(),
		cellW:   bs / 4,
		cellH:   bs / 2,
		groundY: g.cfg.World.GroundY(),
	}
	below := int(math.Ceil((g.cfg.World.Height - v.groundY) / v.cellH))
	v.groundRow = max(3, dst.Height()-below)
	return v
}

func (v view) col(x float64) int {
	return core.FloorDiv(x-v.cam, v.cellW)
}

func (v view) row(y float64) int {
	return v.groundRow + core.FloorDiv(y-v.groundY, v.cellH)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	v := g.view(dst)
	g.drawGround(dst, v)
	g.drawFinish(dst, v)

	right := v.cam + float64(dst.Width())*v.cellW
	for _, o := range g.session.World().Between(v.cam-g.cfg.World.BlockSize, right) {
		g.drawObstacle(dst, v, o)
	}

	g.drawDog(dst, v)
	g.drawHUD(dst)
	g.drawOverlay(dst)
}

func (g *Game) drawGround(dst *core.Screen, v view) {
	w := g.session.World()
	bs := g.cfg.World.BlockSize

	for x := 0; x < dst.Width(); x++ {
		px := v.cam + (float64(x)+0.5)*v.cellW
		col := core.FloorDiv(px, bs)
		if w.IsPit(col) {
			continue
		}

		r, c := GroundChar, core.ColorGrass
		if w.IsPit(col-1) || w.IsPit(col+1) {
			r, c = EdgeChar, core.ColorCaution
		}
		dst.SetColored(x, v.groundRow, r, c)
		for y := v.groundRow + 1; y < dst.Height(); y++ {
			dst.SetColored(x, y, DirtChar, core.ColorDirt)
		}
	}
}

func (g *Game) drawFinish(dst *core.Screen, v view) {
	course := g.session.Course()
	if course == nil {
		return
	}
	x := v.col(course.FinishX())
	if x < 0 || x >= dst.Width() {
		return
	}
	dst.DrawVLine(x, 2, v.groundRow-2, FinishChar, core.ColorFinish)
	dst.SetColored(x+1, 2, FlagChar, core.ColorFinish)
}

func (g *Game) drawObstacle(dst *core.Screen, v view, o Obstacle) {
	var sprite [2]string
	var c core.Color
	switch o.Kind {
	case KindSpike:
		sprite, c = spriteSpike, core.ColorSpike
	case KindBlock:
		sprite, c = spriteBlock, core.ColorBlock
	case KindPad:
		sprite, c = spritePad, core.ColorPad
	default:
		return
	}
	drawSprite(dst, v.col(o.X), v.row(o.Y), sprite, c)
}

func (g *Game) drawDog(dst *core.Screen, v view) {
	a := g.session.Actor()
	sprite := spriteDog
	switch {
	case g.session.State() == StateDead:
		sprite = spriteDead
	case !a.Grounded:
		sprite = spriteJump
	}
	x, y := v.col(a.X), v.row(a.Y)
	drawSprite(dst, x, y, sprite, core.ColorDog)

	// Eyes get their own color.
	for i, r := range []rune(sprite[1]) {
		if i > 0 && i < 3 {
			dst.SetColored(x+i, y+1, r, core.ColorDogFace)
		}
	}
}

// drawSprite draws a two-row sprite, leaving spaces transparent.
func drawSprite(dst *core.Screen, x, y int, sprite [2]string, c core.Color) {
	for dy, line := range sprite {
		for dx, r := range []rune(line) {
			if r != ' ' {
				dst.SetColored(x+dx, y+dy, r, c)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", s.Score()), core.ColorHUD)

	best := fmt.Sprintf(" Best: %d ", s.Best())
	dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorGold)

	title := g.title
	if c := s.Course(); c != nil {
		title = fmt.Sprintf("%s: %s", g.title, c.Name)
	}
	if s.Attempt() > 0 {
		title = fmt.Sprintf("%s  #%d", title, s.Attempt())
	}
	dst.DrawTextCentered(0, title, core.ColorTitle)
}

func (g *Game) drawOverlay(dst *core.Screen) {
	s := g.session
	switch {
	case g.paused:
		g.drawCenteredMessage(dst, core.ColorTitle, "PAUSED", "Press P to resume")

	case s.State() == StateStart:
		lines := []string{"DOG DASH", "Press SPACE to jump and start"}
		if s.Course() != nil {
			lines[0] = s.Course().Name
		}
		if s.Best() > 0 {
			lines = append(lines, fmt.Sprintf("Best: %d", s.Best()))
		}
		g.drawCenteredMessage(dst, core.ColorTitle, lines...)

	case s.State() == StateDead:
		lines := []string{"WOOF!", fmt.Sprintf("Score: %d", s.Score())}
		if s.NewBest() {
			lines = append(lines, "New best!")
		} else {
			lines = append(lines, fmt.Sprintf("Best: %d", s.Best()))
		}
		if s.CanRetry() {
			lines = append(lines, "SPACE to try again")
		}
		g.drawCenteredMessage(dst, core.ColorAlert, lines...)

	case s.State() == StateComplete:
		lines := []string{"COURSE COMPLETE", fmt.Sprintf("Score: %d", s.Score())}
		if s.CanRetry() {
			lines = append(lines, "SPACE for the next course")
		}
		g.drawCenteredMessage(dst, core.ColorStar, lines...)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, l := range lines {
		lc := core.ColorHUD
		if i == 0 {
			lc = c
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, lc)
	}
}

package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdEyeChar   = '•'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '▒'
	GroundTopChar = '═'
)

const saveFailedText = "(high score not saved)"

// viewport maps world coordinates onto screen cells.
type viewport struct {
	screenW, screenH float64
	worldW, worldH   float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		screenW: float64(dst.Width()),
		screenH: float64(dst.Height()),
		worldW:  g.cfg.World.Width,
		worldH:  g.cfg.World.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.screenW / v.worldW))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.screenH / v.worldH))
}

// span converts a world interval to a cell interval at least one cell wide.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := g.viewport(dst)

	g.drawGround(dst, vp)

	if g.phase != PhaseTitle {
		for _, p := range g.pipes {
			g.drawPipe(dst, vp, p)
		}
		g.drawBird(dst, vp)
	}

	switch g.phase {
	case PhaseActive:
		g.drawScore(dst)
	case PhaseTitle:
		g.drawMenu(dst, "Press Enter to Play", fmt.Sprintf("High Score: %d", g.highScore))
	case PhaseGameOver:
		lines := []string{
			"Press Enter to Play Again",
			fmt.Sprintf("Score: %d", floorScore(g.score)),
			fmt.Sprintf("High Score: %d", g.highScore),
		}
		if g.saveErr != nil {
			lines = append(lines, saveFailedText)
		}
		top := g.drawMenu(dst, lines...)
		if g.saveErr != nil {
			dst.DrawTextCentered(top+len(lines), saveFailedText, core.ColorRed)
		}
	}
}

// drawGround fills the strip below the ground line.
func (g *Game) drawGround(dst *core.Screen, vp viewport) {
	top := vp.row(g.cfg.World.Height - g.cfg.World.GroundHeight)
	dst.DrawHLine(0, top, dst.Width(), GroundTopChar, core.ColorBrightGreen)
	dst.FillRect(0, top+1, dst.Width(), dst.Height()-top-1, GroundChar, core.ColorGreen)
}

// drawPipe renders one pipe pair above the ground.
func (g *Game) drawPipe(dst *core.Screen, vp viewport, p PipePair) {
	x0, x1 := span(vp.col(p.X), vp.col(p.Right()))
	groundRow := vp.row(g.cfg.World.Height - g.cfg.World.GroundHeight)

	// Upper pipe, capped at its bottom edge
	gapTopRow := vp.row(p.GapTop)
	dst.FillRect(x0, 0, x1-x0, gapTopRow, PipeChar, core.ColorBlue)
	if gapTopRow > 0 {
		dst.DrawHLine(x0, gapTopRow-1, x1-x0, PipeCapTop, core.ColorBrightBlue)
	}

	// Lower pipe, capped at its top edge
	bottomRow := vp.row(p.GapTop + p.GapHeight)
	dst.FillRect(x0, bottomRow, x1-x0, groundRow-bottomRow, PipeChar, core.ColorBlue)
	if bottomRow < groundRow {
		dst.DrawHLine(x0, bottomRow, x1-x0, PipeCapBottom, core.ColorBrightBlue)
	}
}

// drawBird renders the avatar as a filled ellipse-ish block with an eye.
func (g *Game) drawBird(dst *core.Screen, vp viewport) {
	r := g.bird.Rect()
	x0, x1 := span(vp.col(r.X), vp.col(r.Right()))
	y0, y1 := span(vp.row(r.Y), vp.row(r.Bottom()))
	dst.FillRect(x0, y0, x1-x0, y1-y0, BirdChar, core.ColorYellow)

	cx, cy := r.Center()
	dst.SetColored(core.Max(vp.col(cx+5), x0), core.Max(vp.row(cy-5), y0), BirdEyeChar, core.ColorBrightWhite)
}

// drawScore draws the in-round HUD.
func (g *Game) drawScore(dst *core.Screen) {
	dst.DrawTextCentered(0, fmt.Sprintf(" Score: %d ", floorScore(g.score)), core.ColorBrightWhite)
	dst.DrawTextCentered(1, fmt.Sprintf(" High Score: %d ", g.highScore), core.ColorBrightWhite)
}

// drawMenu draws a message box with the given lines in the center of the
// screen and returns the row of the box's top border.
func (g *Game) drawMenu(dst *core.Screen, lines ...string) int {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	textW := 0
	for _, l := range lines {
		textW = core.Max(textW, len([]rune(l)))
	}
	boxW := textW + 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorGray)

	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorYellow
		}
		dst.DrawTextCentered(boxY+1+i, l, c)
	}
	return boxY
}

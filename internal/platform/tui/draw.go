package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/dos-defender/internal/core"
	"github.com/vovakirdan/dos-defender/internal/games/defender"
)

// Terminal cells are roughly twice as tall as wide, so a cell covers twice
// as many playfield units vertically.
const (
	UnitsPerCol = 10.0
	UnitsPerRow = 20.0

	hudRows = 1 // Score line above the playfield

	MinCols = 40
	MinRows = 16
)

// FieldSize returns the playfield size in units for a screen of the given
// size in cells.
func FieldSize(cols, rows int) (float64, float64) {
	return float64(cols) * UnitsPerCol, float64(core.Max(rows-hudRows, 0)) * UnitsPerRow
}

// TooSmall reports whether a terminal cannot fit the playfield.
func TooSmall(cols, rows int) bool {
	return cols < MinCols || rows < MinRows
}

// cellSpan maps a playfield interval to the inclusive cell range it covers.
func cellSpan(pos, size, unit float64) (int, int) {
	start := int(math.Floor(pos / unit))
	end := int(math.Ceil((pos+size)/unit)) - 1
	if end < start {
		end = start
	}
	return start, end
}

// DrawSnapshot renders a snapshot into the screen buffer.
func DrawSnapshot(s *core.Screen, snap defender.Snapshot) {
	s.Clear()
	drawHUD(s, snap)

	for _, e := range snap.Entities {
		switch e.Kind {
		case defender.KindParticle:
			drawParticle(s, e)
		case defender.KindEnemy:
			drawEnemy(s, e)
		case defender.KindPlayerShot:
			drawFill(s, e, '|', core.ColorBrightYellow)
		case defender.KindEnemyShot:
			drawFill(s, e, '!', core.ColorOrange)
		case defender.KindPowerUp:
			drawPowerUp(s, e)
		case defender.KindPlayer:
			// Drawn last so it stays on top
		}
	}
	if p, ok := snap.Player(); ok && snap.State != defender.StateMenu {
		drawPlayer(s, p, snap.Frame)
	}

	drawOverlay(s, snap)
}

// DrawTooSmall renders the notice shown when the terminal is too small.
func DrawTooSmall(s *core.Screen) {
	s.Clear()
	mid := s.Height() / 2
	s.DrawTextCentered(mid-1, "Terminal too small", core.ColorYellow)
	s.DrawTextCentered(mid+1, fmt.Sprintf("need at least %dx%d", MinCols, MinRows), core.ColorGray)
}

func drawHUD(s *core.Screen, snap defender.Snapshot) {
	left := fmt.Sprintf("SCORE %06d  LIVES %s  LEVEL %d",
		snap.Score, strings.Repeat("♥", core.Max(snap.Lives, 0)), snap.Level)
	s.DrawText(0, 0, left, core.ColorWhite)

	x := len([]rune(left)) + 2
	if snap.RapidFireSeconds > 0 {
		tag := fmt.Sprintf("RAPID %ds", snap.RapidFireSeconds)
		s.DrawText(x, 0, tag, core.ColorBrightGreen)
		x += len(tag) + 2
	}
	if snap.ShieldSeconds > 0 {
		s.DrawText(x, 0, fmt.Sprintf("SHIELD %ds", snap.ShieldSeconds), core.ColorBrightCyan)
	}

	right := fmt.Sprintf("WAVE %d/%d  HI %06d", snap.Spawned, snap.Quota, snap.HighScore)
	s.DrawText(s.Width()-len(right), 0, right, core.ColorGray)
}

// toCells returns the cell rectangle covered by an entity.
func toCells(e defender.EntityView) (x0, y0, x1, y1 int) {
	x0, x1 = cellSpan(e.X, e.W, UnitsPerCol)
	y0, y1 = cellSpan(e.Y, e.H, UnitsPerRow)
	return x0, y0 + hudRows, x1, y1 + hudRows
}

// drawFill fills an entity's cells, never drawing over the HUD.
func drawFill(s *core.Screen, e defender.EntityView, r rune, c core.Color) {
	x0, y0, x1, y1 := toCells(e)
	y0 = core.Max(y0, hudRows)
	s.FillCells(x0, y0, x1-x0+1, y1-y0+1, r, c)
}

func drawPlayer(s *core.Screen, p defender.EntityView, frame uint64) {
	color := core.ColorGreen
	if p.Variant == 1 {
		color = core.ColorBrightCyan
	}
	if p.Flash && frame%8 < 4 {
		color = core.ColorRed
	}

	x0, y0, x1, _ := toCells(p)
	y := core.Max(y0, hudRows)
	for x := x0; x <= x1; x++ {
		r := '='
		switch x {
		case x0:
			r = '<'
		case x1:
			r = '>'
		}
		s.SetColored(x, y, r, color)
	}
	s.SetColored((x0+x1+1)/2, y, '^', color)
}

func drawEnemy(s *core.Screen, e defender.EntityView) {
	switch defender.EnemyShape(e.Variant) {
	case defender.ShapeTriangle:
		drawFill(s, e, 'V', core.ColorMagenta)
	case defender.ShapeDiamond:
		drawFill(s, e, '◊', core.ColorYellow)
	default:
		drawFill(s, e, '#', core.ColorRed)
	}
}

func drawPowerUp(s *core.Screen, e defender.EntityView) {
	if defender.PowerUpKind(e.Variant) == defender.PowerUpShield {
		drawFill(s, e, 'S', core.ColorBrightCyan)
		return
	}
	drawFill(s, e, 'R', core.ColorBrightGreen)
}

func drawParticle(s *core.Screen, e defender.EntityView) {
	cx := e.X + e.W/2
	cy := e.Y + e.H/2
	x := int(math.Floor(cx / UnitsPerCol))
	y := int(math.Floor(cy/UnitsPerRow)) + hudRows
	if y < hudRows {
		return
	}
	switch {
	case e.Opacity > 0.6:
		s.SetColored(x, y, '*', core.ColorOrange)
	case e.Opacity > 0.3:
		s.SetColored(x, y, '+', core.ColorYellow)
	default:
		s.SetColored(x, y, '.', core.ColorGray)
	}
}

func drawOverlay(s *core.Screen, snap defender.Snapshot) {
	mid := s.Height() / 2
	switch snap.State {
	case defender.StateMenu:
		s.DrawTextCentered(mid-3, "D O S   D E F E N D E R", core.ColorBrightGreen)
		s.DrawTextCentered(mid-1, "Defend the sector from descending invaders", core.ColorGray)
		s.DrawTextCentered(mid+1, "Press ENTER to start", core.ColorWhite)
		s.DrawTextCentered(mid+3, "←/→ move   SPACE fire   P pause", core.ColorGray)
		if snap.HighScore > 0 {
			s.DrawTextCentered(mid+5, fmt.Sprintf("HIGH SCORE %06d", snap.HighScore), core.ColorYellow)
		}
	case defender.StatePaused:
		s.DrawTextCentered(mid, "PAUSED", core.ColorYellow)
		s.DrawTextCentered(mid+2, "Press P to resume", core.ColorGray)
	case defender.StateLevelComplete:
		s.DrawTextCentered(mid-1, fmt.Sprintf("LEVEL %d COMPLETE", snap.Level), core.ColorBrightGreen)
		s.DrawTextCentered(mid+1, "Press ENTER to continue", core.ColorWhite)
	case defender.StateGameOver:
		s.DrawTextCentered(mid-2, "GAME OVER", core.ColorRed)
		s.DrawTextCentered(mid, fmt.Sprintf("SCORE %06d", snap.Score), core.ColorWhite)
		if snap.Score >= snap.HighScore && snap.Score > 0 {
			s.DrawTextCentered(mid+1, "NEW HIGH SCORE!", core.ColorBrightYellow)
		}
		s.DrawTextCentered(mid+3, "Press ENTER or R to play again", core.ColorGray)
	}
}

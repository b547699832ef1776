package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogdash/internal/core"
)

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// colorStyles maps palette slots to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorDog:     fg("#e8a43a").Bold(true),
	core.ColorDogFace: fg("#f5deb3"),
	core.ColorSpike:   fg("#ff3344"),
	core.ColorBlock:   fg("#5d5d7c"),
	core.ColorPad:     fg("#ffd700"),
	core.ColorGrass:   fg("#4a8c3f"),
	core.ColorDirt:    fg("#3d2b1e"),
	core.ColorPit:     fg("#12122a"),
	core.ColorCaution: fg("#ddaa00"),
	core.ColorFinish:  fg("#ffd700").Bold(true),
	core.ColorStar:    fg("#ffffff"),
	core.ColorHUD:     fg("#ffffff"),
	core.ColorDim:     fg("#5d5d7c"),
	core.ColorTitle:   fg("#e8a43a").Bold(true),
	core.ColorAlert:   fg("#ff4444").Bold(true),
	core.ColorGold:    fg("#ffd700"),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

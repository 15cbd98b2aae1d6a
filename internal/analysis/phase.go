package analysis

import (
	"fmt"
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait is the projection of a trajectory onto two state components.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []Point
}

func NewPhasePortrait(states [][]float64, xIdx, yIdx int) (*PhasePortrait, error) {
	portrait := &PhasePortrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(states)),
	}

	for i, x := range states {
		if xIdx < 0 || yIdx < 0 || xIdx >= len(x) || yIdx >= len(x) {
			return nil, fmt.Errorf("state %d has %d components, axes are %d and %d", i, len(x), xIdx, yIdx)
		}
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}

	return portrait, nil
}

// ASCII renders the points on a width×height canvas with 10% padding and
// the axes drawn where they are visible.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection returns the (recordX, recordY) components, linearly
// interpolated, wherever component crossIdx passes upward through
// threshold between consecutive states.
func PoincareSection(states [][]float64, crossIdx, recordX, recordY int, threshold float64) []Point {
	var points []Point
	for i := 1; i < len(states); i++ {
		prev, curr := states[i-1], states[i]
		if crossIdx >= len(curr) || recordX >= len(curr) || recordY >= len(curr) || crossIdx >= len(prev) {
			continue
		}
		if !(prev[crossIdx] < threshold && curr[crossIdx] >= threshold) {
			continue
		}

		frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
		points = append(points, Point{
			X: prev[recordX] + frac*(curr[recordX]-prev[recordX]),
			Y: prev[recordY] + frac*(curr[recordY]-prev[recordY]),
		})
	}
	return points
}

// Package canvas rasterizes positioned boxes and routed edge paths onto a
// character grid: box content is blitted verbatim (and protected from being
// overwritten), edges accumulate directional bits per cell so junction
// glyphs come out correct regardless of how many paths cross a cell, and a
// final repair pass reconciles any seam between independently written line
// glyphs and box border stamps.
package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/teleivo/dagascii/graph"
	"github.com/teleivo/dagascii/theme"
)

// continuationCell marks the second column a wide glyph occupies. Render
// skips it entirely; nothing else in the package writes over it once a wide
// glyph claims both columns.
const continuationCell = "\x00"

const (
	dirN uint8 = 1 << iota
	dirS
	dirE
	dirW
)

// Canvas is a fixed-size character grid. The zero value is not usable; build
// one with New.
type Canvas struct {
	grid      [][]string
	protected [][]bool
	lineMask  [][]uint8
	width     int
	height    int
	theme     theme.GlyphTheme
}

// New allocates a blank width x height canvas.
func New(width, height int, th theme.GlyphTheme) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, theme: th}
	c.grid = make([][]string, height)
	c.protected = make([][]bool, height)
	c.lineMask = make([][]uint8, height)
	for y := 0; y < height; y++ {
		c.grid[y] = make([]string, width)
		c.protected[y] = make([]bool, width)
		c.lineMask[y] = make([]uint8, width)
		for x := 0; x < width; x++ {
			c.grid[y][x] = " "
		}
	}
	return c
}

// PlaceBox blits a node's pre-formatted content onto the grid starting at
// its position, marking every cell it occupies as protected. Wide glyphs
// (East Asian wide or emoji) claim two columns; the second is recorded as a
// continuation cell so Render doesn't double-print it.
func (c *Canvas) PlaceBox(p graph.NodePosition) {
	lines := strings.Split(p.Node.Content, "\n")
	for i, line := range lines {
		row := p.Y + i
		if row < 0 || row >= c.height {
			continue
		}
		col := p.X
		for _, r := range line {
			if col < 0 || col >= c.width {
				break
			}
			c.grid[row][col] = string(r)
			c.protected[row][col] = true
			if runewidth.RuneWidth(r) == 2 && col+1 < c.width {
				c.grid[row][col+1] = continuationCell
				c.protected[row][col+1] = true
				col += 2
			} else {
				col++
			}
		}
	}
}

// DrawPath accumulates an edge path's directional connectivity into the
// line mask. Multiple paths may touch the same cell; the mask is additive
// so the eventual glyph reflects every path that passes through it.
func (c *Canvas) DrawPath(path graph.EdgePath) {
	for _, seg := range path.Segments {
		c.accumulateSegment(seg)
	}
}

func (c *Canvas) accumulateSegment(seg graph.Segment) {
	if seg.Y1 == seg.Y2 {
		y := seg.Y1
		x1, x2 := seg.X1, seg.X2
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		for x := x1; x <= x2; x++ {
			if !c.inBounds(x, y) {
				continue
			}
			if x > x1 {
				c.lineMask[y][x] |= dirW
			}
			if x < x2 {
				c.lineMask[y][x] |= dirE
			}
		}
		return
	}

	x := seg.X1
	y1, y2 := seg.Y1, seg.Y2
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if !c.inBounds(x, y) {
			continue
		}
		if y > y1 {
			c.lineMask[y][x] |= dirN
		}
		if y < y2 {
			c.lineMask[y][x] |= dirS
		}
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// ResolveLines converts every accumulated direction mask into its junction
// glyph and writes it to the grid. Cells inside a box are left untouched:
// routing never targets them, but the guard keeps a misbehaving custom
// Router from corrupting box content.
func (c *Canvas) ResolveLines() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			mask := c.lineMask[y][x]
			if mask == 0 || c.protected[y][x] {
				continue
			}
			c.grid[y][x] = glyphForMask(mask, c.theme)
		}
	}
}

// PlaceConnectors stamps the attachment point of each edge: a tee on the
// source's bottom border where the edge exits, and an arrow at the final
// segment's end cell, one row above the target box, where the path
// terminates. It reads the attachment columns straight off the routed paths
// rather than recomputing an allocation, so it works with any Router
// implementation, not only the reference one.
func (c *Canvas) PlaceConnectors(positions map[string]graph.NodePosition, paths []graph.EdgePath) {
	for _, p := range paths {
		if len(p.Segments) == 0 {
			continue
		}
		if src, ok := positions[p.SourceID]; ok {
			first := p.Segments[0]
			row := src.Y + src.Node.Height() - 1
			c.stamp(first.X1, row, c.theme.TeeDown)
		}
		last := p.Segments[len(p.Segments)-1]
		c.stamp(last.X2, last.Y2, c.theme.ArrowDown)
	}
}

func (c *Canvas) stamp(x, y int, glyph string) {
	if c.inBounds(x, y) {
		c.grid[y][x] = glyph
	}
}

// Repair recomputes every line and junction glyph from its four neighbors'
// actual grid contents, fixing any seam left where a box's connector stamp
// meets a routed line. It never touches protected (box) cells or arrowheads,
// and is idempotent: running it again changes nothing.
func (c *Canvas) Repair() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.protected[y][x] {
				continue
			}
			ch := c.grid[y][x]
			if ch == " " || ch == continuationCell || ch == c.theme.ArrowDown {
				continue
			}
			if !c.theme.IsBasicLine(ch) && !c.theme.IsJunction(ch) {
				continue
			}

			mask := uint8(0)
			if c.connects(x, y-1) {
				mask |= dirN
			}
			if c.connects(x, y+1) {
				mask |= dirS
			}
			if c.connects(x+1, y) {
				mask |= dirE
			}
			if c.connects(x-1, y) {
				mask |= dirW
			}
			if mask != 0 {
				c.grid[y][x] = glyphForMask(mask, c.theme)
			}
		}
	}
}

func (c *Canvas) connects(x, y int) bool {
	if !c.inBounds(x, y) {
		return false
	}
	ch := c.grid[y][x]
	return c.theme.IsBasicLine(ch) || c.theme.IsJunction(ch) || ch == c.theme.ArrowDown
}

func glyphForMask(mask uint8, th theme.GlyphTheme) string {
	n := mask&dirN != 0
	s := mask&dirS != 0
	e := mask&dirE != 0
	w := mask&dirW != 0

	switch {
	case n && s && e && w:
		return th.Cross
	case n && e && w:
		return th.TeeUp
	case s && e && w:
		return th.TeeDown
	case n && s && e:
		return th.TeeRight
	case n && s && w:
		return th.TeeLeft
	case n && e:
		return th.CornerBottomLeft
	case n && w:
		return th.CornerBottomRight
	case s && e:
		return th.CornerTopLeft
	case s && w:
		return th.CornerTopRight
	case n || s:
		return th.Vertical
	case e || w:
		return th.Horizontal
	default:
		return " "
	}
}

// Render returns the canvas as text: each row right-trimmed of trailing
// spaces, with trailing blank rows dropped.
func (c *Canvas) Render() string {
	lines := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var sb strings.Builder
		for x := 0; x < c.width; x++ {
			cell := c.grid[y][x]
			if cell == continuationCell {
				continue
			}
			sb.WriteString(cell)
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

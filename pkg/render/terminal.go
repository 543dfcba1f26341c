package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the canvas to terminal cells and draws them on the
// screen. Each terminal row covers two canvas rows using the upper
// half block, fg for the top pixel and bg for the bottom, so the
// canvas height should be twice the terminal height.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < c.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: c.cellColor(col, topY),
					Bg: c.cellColor(col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func (c *Canvas) cellColor(x, y int) color.Color {
	if y >= c.height {
		return nil
	}
	i := (y*c.width + x) * 3
	return color.RGBA{c.pixels[i], c.pixels[i+1], c.pixels[i+2], 255}
}

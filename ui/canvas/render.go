package canvas

import (
	"image"
	"image/color"
	"math"

	"inkboard/internal/element"
	"inkboard/internal/viewport"
	"inkboard/pkg/colorutil"
	"inkboard/pkg/geometry"
)

// draw is the raster drawing function. Everything is composited in screen
// space under the current viewport transform.
func (c *SketchCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := colorutil.ParseHexOr(c.backgroundColor, colorutil.White)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			output.SetRGBA(x, y, bg)
		}
	}

	vp, ok := c.Viewport()
	if !ok {
		return output
	}

	view := geometry.NewRect(0, 0, float64(w), float64(h))
	for _, el := range c.scene.Elements() {
		if el.IsDeleted {
			continue
		}
		if !screenBounds(el, vp).Expand(4).Intersects(view) {
			continue
		}
		c.drawElement(output, el, vp)
	}

	return output
}

// screenBounds returns the element's bounding box in screen coordinates.
func screenBounds(el *element.Element, vp viewport.State) geometry.Rect {
	b := el.Bounds()
	sx, sy := vp.ScreenFromWorld(b.X, b.Y)
	return geometry.NewRect(sx, sy, b.Width*vp.Zoom, b.Height*vp.Zoom)
}

func (c *SketchCanvas) drawElement(output *image.RGBA, el *element.Element, vp viewport.State) {
	stroke := colorutil.ParseHexOr(el.StrokeColor, colorutil.Black)
	fill := colorutil.ParseHexOr(el.BackgroundColor, colorutil.Transparent)
	opacity := el.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	sb := screenBounds(el, vp)
	x1, y1 := int(sb.X), int(sb.Y)
	x2, y2 := int(sb.X+sb.Width), int(sb.Y+sb.Height)

	switch el.Kind {
	case element.KindRectangle:
		if fill.A > 0 {
			fillRect(output, x1, y1, x2, y2, fill, opacity)
		}
		drawRectOutline(output, x1, y1, x2, y2, stroke, opacity)

	case element.KindEllipse:
		if fill.A > 0 {
			fillEllipse(output, x1, y1, x2, y2, fill, opacity)
		}
		drawEllipseOutline(output, x1, y1, x2, y2, stroke, opacity)

	case element.KindLine, element.KindArrow:
		c.drawLinear(output, el, vp, stroke, opacity)

	case element.KindText:
		scale := labelScale(vp.Zoom)
		drawLabel(output, el.Text, x1, y1, stroke, scale, opacity)

	case element.KindImage:
		c.drawImageElement(output, el, vp, opacity)

	case element.KindFrame:
		drawRectOutline(output, x1, y1, x2, y2, colorutil.WithAlpha(stroke, 160), opacity)
		scale := labelScale(vp.Zoom)
		drawLabel(output, el.Text, x1, y1-6*scale, stroke, scale, opacity)

	default:
		drawRectOutline(output, x1, y1, x2, y2, stroke, opacity)
	}
}

// drawLinear renders a line or arrow element from its point list.
func (c *SketchCanvas) drawLinear(output *image.RGBA, el *element.Element, vp viewport.State, stroke color.RGBA, opacity float64) {
	if len(el.Points) < 2 {
		return
	}

	prevX, prevY := 0, 0
	for i, p := range el.Points {
		sx, sy := vp.ScreenFromWorld(el.X+p.X, el.Y+p.Y)
		x, y := int(sx), int(sy)
		if i > 0 {
			drawLine(output, prevX, prevY, x, y, stroke, opacity)
		}
		prevX, prevY = x, y
	}

	if el.Kind == element.KindArrow {
		last := el.Points[len(el.Points)-1]
		prev := el.Points[len(el.Points)-2]
		drawArrowHead(output, el, prev, last, vp, stroke, opacity)
	}
}

// drawArrowHead draws two short barbs at the arrow tip.
func drawArrowHead(output *image.RGBA, el *element.Element, prev, tip geometry.Point2D, vp viewport.State, stroke color.RGBA, opacity float64) {
	angle := math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
	headLen := 12.0 / vp.Zoom // Constant on-screen size

	tx, ty := vp.ScreenFromWorld(el.X+tip.X, el.Y+tip.Y)
	for _, side := range []float64{-1, 1} {
		a := angle + side*math.Pi/6
		wx := el.X + tip.X - headLen*math.Cos(a)
		wy := el.Y + tip.Y - headLen*math.Sin(a)
		sx, sy := vp.ScreenFromWorld(wx, wy)
		drawLine(output, int(tx), int(ty), int(sx), int(sy), stroke, opacity)
	}
}

// drawImageElement samples the referenced image file with nearest-neighbor
// scaling into the element's screen rectangle.
func (c *SketchCanvas) drawImageElement(output *image.RGBA, el *element.Element, vp viewport.State, opacity float64) {
	file := c.scene.File(el.FileID)
	if file == nil || file.Image == nil {
		// Payload didn't travel with the element; show a placeholder frame.
		sb := screenBounds(el, vp)
		drawRectOutline(output, int(sb.X), int(sb.Y), int(sb.X+sb.Width), int(sb.Y+sb.Height),
			colorutil.WithAlpha(colorutil.Black, 120), opacity)
		return
	}

	src := file.Image
	srcBounds := src.Bounds()
	sb := screenBounds(el, vp)
	outBounds := output.Bounds()

	x1 := clampInt(int(sb.X), outBounds.Min.X, outBounds.Max.X)
	y1 := clampInt(int(sb.Y), outBounds.Min.Y, outBounds.Max.Y)
	x2 := clampInt(int(sb.X+sb.Width), outBounds.Min.X, outBounds.Max.X)
	y2 := clampInt(int(sb.Y+sb.Height), outBounds.Min.Y, outBounds.Max.Y)
	if sb.Width <= 0 || sb.Height <= 0 {
		return
	}

	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			u := (float64(x) - sb.X) / sb.Width
			v := (float64(y) - sb.Y) / sb.Height
			srcX := srcBounds.Min.X + int(u*float64(srcBounds.Dx()))
			srcY := srcBounds.Min.Y + int(v*float64(srcBounds.Dy()))
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X ||
				srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
				continue
			}
			sr, sg, sbl, sa := src.At(srcX, srcY).RGBA()
			if sa == 0 {
				continue
			}
			srcColor := color.RGBA{R: uint8(sr >> 8), G: uint8(sg >> 8), B: uint8(sbl >> 8), A: 255}
			alpha := opacity * float64(sa) / 0xffff
			blendPixel(output, x, y, srcColor, alpha)
		}
	}
}

// labelScale sizes the 3x5 font with zoom, clamped for readability.
func labelScale(zoom float64) int {
	scale := int(zoom * 3)
	if scale < 2 {
		scale = 2
	}
	if scale > 8 {
		scale = 8
	}
	return scale
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendPixel writes a color at the given opacity over the existing pixel.
func blendPixel(output *image.RGBA, x, y int, col color.RGBA, opacity float64) {
	if !(image.Point{X: x, Y: y}).In(output.Bounds()) {
		return
	}
	if opacity >= 0.999 {
		output.SetRGBA(x, y, col)
		return
	}
	if opacity <= 0.001 {
		return
	}
	dr, dg, db, _ := output.At(x, y).RGBA()
	dst := color.RGBA{R: uint8(dr >> 8), G: uint8(dg >> 8), B: uint8(db >> 8), A: 255}
	output.SetRGBA(x, y, colorutil.Blend(dst, col, opacity))
}

// drawLine draws a line using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		blendPixel(output, x1, y1, col, opacity)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawRectOutline draws a one-pixel rectangle outline.
func drawRectOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	for x := x1; x <= x2; x++ {
		blendPixel(output, x, y1, col, opacity)
		blendPixel(output, x, y2, col, opacity)
	}
	for y := y1; y <= y2; y++ {
		blendPixel(output, x1, y, col, opacity)
		blendPixel(output, x2, y, col, opacity)
	}
}

// fillRect fills a rectangle.
func fillRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			blendPixel(output, x, y, col, opacity)
		}
	}
}

// drawEllipseOutline draws an axis-aligned ellipse inscribed in the rect.
func drawEllipseOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	if rx < 1 || ry < 1 {
		drawRectOutline(output, x1, y1, x2, y2, col, opacity)
		return
	}

	// Step count proportional to circumference keeps the outline closed.
	steps := int(4 * (rx + ry))
	if steps < 16 {
		steps = 16
	}
	prevX, prevY := 0, 0
	for i := 0; i <= steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		x := int(cx + rx*math.Cos(a))
		y := int(cy + ry*math.Sin(a))
		if i > 0 {
			drawLine(output, prevX, prevY, x, y, col, opacity)
		}
		prevX, prevY = x, y
	}
}

// fillEllipse fills an axis-aligned ellipse inscribed in the rect.
func fillEllipse(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	if rx < 1 || ry < 1 {
		return
	}

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			if nx*nx+ny*ny <= 1 {
				blendPixel(output, x, y, col, opacity)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

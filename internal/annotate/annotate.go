// Package annotate draws element bounding boxes and ID badges onto a
// captured screenshot, producing the annotated artifact referenced by a
// snapshot's annotatedPath.
package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/uidrive/internal/model"
)

// Draw renders each element's bounding box and "[id]" badge onto a copy of
// img. windowBounds is the captured window's frame in screen points; element
// frames are screen-absolute, so the ratio of image pixels to window points
// converts them (this also absorbs Retina 2x capture).
func Draw(img image.Image, elements map[string]model.UIElement, windowBounds *model.Frame) *image.RGBA {
	rgba := toRGBA(img)

	imgBounds := img.Bounds()
	originX, originY := 0.0, 0.0
	scaleX, scaleY := 1.0, 1.0
	if windowBounds != nil {
		originX, originY = windowBounds.X, windowBounds.Y
		if windowBounds.Width > 0 {
			scaleX = float64(imgBounds.Dx()) / windowBounds.Width
		}
		if windowBounds.Height > 0 {
			scaleY = float64(imgBounds.Dy()) / windowBounds.Height
		}
	}

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	badgeColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	// Draw in sorted ID order so overlapping badges stack deterministically.
	ids := make([]string, 0, len(elements))
	for id := range elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		el := elements[id]
		x := int((el.Frame.X - originX) * scaleX)
		y := int((el.Frame.Y - originY) * scaleY)
		w := int(el.Frame.Width * scaleX)
		h := int(el.Frame.Height * scaleY)

		drawRect(rgba, x, y, x+w, y+h, boxColor)
		drawBadge(rgba, x, y, "["+el.ID+"]", textColor, badgeColor)
	}
	return rgba
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRect draws a 2px rectangle outline clipped to the image.
func drawRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for t := 0; t < 2; t++ {
		for x := x0; x <= x1; x++ {
			setClipped(img, x, y0+t, c)
			setClipped(img, x, y1-t, c)
		}
		for y := y0; y <= y1; y++ {
			setClipped(img, x0+t, y, c)
			setClipped(img, x1-t, y, c)
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// drawBadge paints a filled background behind the label so the white text
// stays readable on light windows.
func drawBadge(img *image.RGBA, x, y int, label string, textColor, bg color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	height := face.Metrics().Height.Ceil()

	pad := 2
	rect := image.Rect(x, y, x+width+2*pad, y+height+2*pad)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(bg), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x + pad),
			Y: fixed.I(y + pad + face.Metrics().Ascent.Ceil()),
		},
	}
	d.DrawString(label)
}

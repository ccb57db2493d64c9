package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

// Icon returns a small keyboard glyph as PNG data.
func Icon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	body := color.NRGBA{R: 0x2a, G: 0x2d, B: 0x35, A: 0xff}
	key := color.NRGBA{R: 0xd8, G: 0xdb, B: 0xe2, A: 0xff}
	blue := color.NRGBA{R: 0x2f, G: 0x7b, B: 0xf5, A: 0xff}
	red := color.NRGBA{R: 0xe5, G: 0x48, B: 0x4d, A: 0xff}

	fill(img, image.Rect(1, 7, 31, 26), body)
	for row := 0; row < 3; row++ {
		for col := 0; col < 6; col++ {
			c := key
			switch {
			case row == 1 && col == 1:
				c = blue
			case row == 1 && col == 4:
				c = red
			}
			x, y := 3+col*5, 9+row*5
			fill(img, image.Rect(x, y, x+3, y+3), c)
		}
	}
	// space bar
	fill(img, image.Rect(8, 24, 24, 25), key)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

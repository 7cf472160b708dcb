package graphics

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// pixels is an 8-bit non-premultiplied RGBA image ready for upload.
// stride is the decoder's row pitch in bytes and may exceed width*4.
type pixels struct {
	width  int
	height int
	stride int
	pix    []byte
}

// decodeImage decodes any registered format into RGBA8.
func decodeImage(r io.Reader) (pixels, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return pixels{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return toPixels(img), nil
}

// toPixels keeps NRGBA images as they are, including their row padding,
// and converts everything else.
func toPixels(img image.Image) pixels {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	p := pixels{width: b.Dx(), height: b.Dy(), stride: nrgba.Stride, pix: nrgba.Pix}
	if n := p.height * p.stride; n < len(p.pix) {
		p.pix = p.pix[:n]
	}
	return p
}

package outfit

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Material pairs one texture page with the blend mode used to draw it.
// Attachments that share a Material can be drawn in a single call.
//
// The page is kept on the CPU so it can be repacked; the GPU copy is created
// on first use by Texture and released by Dispose.
type Material struct {
	Name  string
	Blend BlendMode

	page     *image.NRGBA
	texture  *ebiten.Image
	disposed bool
}

// NewMaterial wraps a page image. The image is not copied.
func NewMaterial(name string, page *image.NRGBA, blend BlendMode) *Material {
	return &Material{Name: name, Blend: blend, page: page}
}

// Page returns the CPU-side page image, or nil once disposed.
func (m *Material) Page() *image.NRGBA {
	if m == nil {
		return nil
	}
	return m.page
}

// Width returns the page width in pixels.
func (m *Material) Width() int {
	if m == nil || m.page == nil {
		return 0
	}
	return m.page.Bounds().Dx()
}

// Height returns the page height in pixels.
func (m *Material) Height() int {
	if m == nil || m.page == nil {
		return 0
	}
	return m.page.Bounds().Dy()
}

// Texture returns the GPU image for the page, uploading it on first call.
// Returns nil for a disposed material.
func (m *Material) Texture() *ebiten.Image {
	if m == nil || m.disposed || m.page == nil {
		return nil
	}
	if m.texture == nil {
		m.texture = ebiten.NewImageFromImage(m.page)
	}
	return m.texture
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m != nil && m.disposed
}

// Dispose deallocates the GPU image and drops the page. The Material should
// not be used after calling Dispose.
func (m *Material) Dispose() {
	if m == nil || m.disposed {
		return
	}
	if m.texture != nil {
		m.texture.Deallocate()
		m.texture = nil
	}
	m.page = nil
	m.disposed = true
}

// DrawOptions builds draw options that place region at (x, y) with the given
// slot tint applied as a color scale. The returned sub-image is nil when the
// material has no texture.
func (m *Material) DrawOptions(region TextureRegion, x, y float64, tint Color) (*ebiten.Image, *ebiten.DrawImageOptions) {
	tex := m.Texture()
	if tex == nil {
		return nil, nil
	}
	sub := tex.SubImage(region.storedRect()).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if region.Rotated {
		op.GeoM.Rotate(-1.5707963267948966) // -π/2
		op.GeoM.Translate(0, float64(region.Width))
	}
	op.GeoM.Translate(x+float64(region.OffsetX), y+float64(region.OffsetY))
	op.ColorScale.Scale(
		float32(tint.R*tint.A),
		float32(tint.G*tint.A),
		float32(tint.B*tint.A),
		float32(tint.A),
	)
	op.Blend = m.Blend.EbitenBlend()
	return sub, op
}

// magenta placeholder singleton (no sync.Once; outfit is single-threaded)
var magentaMaterial *Material

func ensureMagentaMaterial() *Material {
	if magentaMaterial == nil {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 255})
		magentaMaterial = NewMaterial("magenta", img, BlendNormal)
	}
	return magentaMaterial
}

package outfit

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"golang.org/x/image/draw"
)

var (
	// ErrNothingToPack is returned when a skin references no packable image.
	ErrNothingToPack = errors.New("outfit: skin has no attachments to pack")
	// ErrAtlasTooLarge is returned when the packed images exceed PackOptions.MaxSize.
	ErrAtlasTooLarge = errors.New("outfit: packed atlas exceeds max size")
)

// Packer merges the images referenced by a skin into one page. It returns a
// skin whose attachments all reference the returned material. base supplies
// the blend mode and name of the generated material and may be nil.
type Packer interface {
	Pack(skin *Skin, base *Material) (*Skin, *Material, error)
}

// PackOptions configures a ShelfPacker. Zero values select the defaults.
type PackOptions struct {
	// MaxSize bounds the page width and height in pixels. Default 2048.
	MaxSize int
	// Padding is the gap in pixels left around each image. Default 2;
	// a negative value disables padding.
	Padding int
	// Scale resamples every image by this factor (CatmullRom). Default 1.
	Scale float64
	// Name of the generated skin. Default "repacked".
	SkinName string
}

func (o PackOptions) withDefaults() PackOptions {
	if o.MaxSize <= 0 {
		o.MaxSize = 2048
	}
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = 2
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.SkinName == "" {
		o.SkinName = "repacked"
	}
	return o
}

// ShelfPacker packs images into rows ("shelves") sorted by descending height.
type ShelfPacker struct {
	Options PackOptions
}

var _ Packer = (*ShelfPacker)(nil)

// packSource is one distinct image rectangle referenced by the skin.
type packSource struct {
	key  packKey
	img  *image.NRGBA
	rect image.Rectangle // placement on the packed page, padding excluded
}

// packKey identifies a source rectangle on a source page at a given scale.
type packKey struct {
	page  *image.NRGBA
	rect  image.Rectangle
	scale float64
}

// packCache holds extracted source images between packs so repeated
// attachments are copied once. Process-wide; cleared after each repack.
// No locking; outfit is single-threaded.
var packCache = map[packKey]*image.NRGBA{}

// ClearPackCache drops every cached source image.
func ClearPackCache() {
	clear(packCache)
}

// PackCacheLen returns the number of cached source images.
func PackCacheLen() int {
	return len(packCache)
}

func extractSource(k packKey) *image.NRGBA {
	if img, ok := packCache[k]; ok {
		return img
	}
	w, h := k.rect.Dx(), k.rect.Dy()
	if k.scale != 1 {
		w = max(1, int(math.Round(float64(w)*k.scale)))
		h = max(1, int(math.Round(float64(h)*k.scale)))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if k.scale == 1 {
		draw.Draw(dst, dst.Bounds(), k.page, k.rect.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), k.page, k.rect, draw.Src, nil)
	}
	packCache[k] = dst
	return dst
}

// Pack implements Packer.
func (p *ShelfPacker) Pack(skin *Skin, base *Material) (*Skin, *Material, error) {
	opts := p.Options.withDefaults()
	entries := skin.Entries()

	// Collect distinct source rectangles in deterministic order.
	var sources []*packSource
	byKey := make(map[packKey]*packSource)
	entryKeys := make([]packKey, len(entries))
	packable := make([]bool, len(entries))
	for i, e := range entries {
		a := e.Attachment
		if a == nil || a.Material.Page() == nil {
			continue
		}
		k := packKey{page: a.Material.Page(), rect: a.Region.storedRect(), scale: opts.Scale}
		entryKeys[i] = k
		packable[i] = true
		if _, ok := byKey[k]; ok {
			continue
		}
		src := &packSource{key: k, img: extractSource(k)}
		byKey[k] = src
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, nil, ErrNothingToPack
	}

	w, h, err := shelfLayout(sources, opts.MaxSize, opts.Padding)
	if err != nil {
		return nil, nil, err
	}

	page := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, s := range sources {
		draw.Draw(page, s.rect, s.img, s.img.Bounds().Min, draw.Src)
	}

	blend := BlendNormal
	name := opts.SkinName
	if base != nil {
		blend = base.Blend
		if base.Name != "" {
			name = base.Name + "-" + opts.SkinName
		}
	}
	mat := NewMaterial(name, page, blend)

	out := NewSkin(opts.SkinName)
	for i, e := range entries {
		if !packable[i] {
			out.SetAttachment(e.SlotIndex, e.Name, e.Attachment)
			continue
		}
		s := byKey[entryKeys[i]]
		out.SetAttachment(e.SlotIndex, e.Name, &Attachment{
			Name:     e.Attachment.Name,
			Region:   repackedRegion(e.Attachment.Region, s.rect, opts.Scale),
			Material: mat,
		})
	}
	return out, mat, nil
}

// shelfLayout assigns page rectangles to sources and returns the page size.
func shelfLayout(sources []*packSource, maxSize, pad int) (int, int, error) {
	sorted := append([]*packSource(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].img.Bounds().Dy() > sorted[j].img.Bounds().Dy()
	})

	x, y, rowHeight := 0, 0, 0
	usedW, usedH := 0, 0
	for _, s := range sorted {
		w := s.img.Bounds().Dx() + 2*pad
		h := s.img.Bounds().Dy() + 2*pad
		if w > maxSize {
			return 0, 0, fmt.Errorf("%w: image %dx%d wider than %d", ErrAtlasTooLarge, w, h, maxSize)
		}
		if x+w > maxSize {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		s.rect = image.Rect(x+pad, y+pad, x+w-pad, y+h-pad)
		x += w
		rowHeight = max(rowHeight, h)
		usedW = max(usedW, x)
		usedH = max(usedH, y+rowHeight)
	}
	if usedH > maxSize {
		return 0, 0, fmt.Errorf("%w: height %d > %d", ErrAtlasTooLarge, usedH, maxSize)
	}
	return usedW, usedH, nil
}

// repackedRegion moves r to its packed placement, scaling trim data.
func repackedRegion(r TextureRegion, placed image.Rectangle, scale float64) TextureRegion {
	sc := func(v int) int { return int(math.Round(float64(v) * scale)) }
	out := TextureRegion{
		Page:      0,
		X:         uint16(placed.Min.X),
		Y:         uint16(placed.Min.Y),
		OriginalW: uint16(sc(int(r.OriginalW))),
		OriginalH: uint16(sc(int(r.OriginalH))),
		OffsetX:   int16(sc(int(r.OffsetX))),
		OffsetY:   int16(sc(int(r.OffsetY))),
		Rotated:   r.Rotated,
	}
	if r.Rotated {
		out.Width = uint16(placed.Dy())
		out.Height = uint16(placed.Dx())
	} else {
		out.Width = uint16(placed.Dx())
		out.Height = uint16(placed.Dy())
	}
	return out
}

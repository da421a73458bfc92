package outfit

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sort"
)

// TextureRegion describes a sub-rectangle within an atlas page.
// Value type, stored directly on Attachment, no pointer.
type TextureRegion struct {
	Page      uint16 // atlas page index (references Atlas.Pages)
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the atlas
}

// storedRect returns the rectangle the region occupies on its page. Rotated
// regions are stored with width and height swapped.
func (r TextureRegion) storedRect() image.Rectangle {
	if r.Rotated {
		return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Height), int(r.Y)+int(r.Width))
	}
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// Atlas holds one or more page materials and a map of named regions.
type Atlas struct {
	// Pages contains the page materials indexed by page number.
	Pages   []*Material
	regions map[string]TextureRegion
}

// NewAtlas creates an empty atlas over the given pages. Regions are added
// with SetRegion.
func NewAtlas(pages []*Material) *Atlas {
	return &Atlas{Pages: pages, regions: make(map[string]TextureRegion)}
}

// SetRegion registers or replaces a named region.
func (a *Atlas) SetRegion(name string, r TextureRegion) {
	a.regions[name] = r
}

// Region returns the TextureRegion for the given name.
// If the name doesn't exist, it logs a warning (debug only) and returns
// a 1×1 magenta placeholder region on page index magentaPlaceholderPage.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if debugEnabled {
		log.Printf("outfit: atlas region %q not found, using magenta placeholder", name)
	}
	return magentaRegion()
}

// HasRegion reports whether the atlas defines name.
func (a *Atlas) HasRegion(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// RegionNames returns all region names in sorted order.
func (a *Atlas) RegionNames() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Material returns the page material a region lives on, the magenta
// placeholder for placeholder regions, or nil for an unknown page.
func (a *Atlas) Material(r TextureRegion) *Material {
	if r.Page == magentaPlaceholderPage {
		return ensureMagentaMaterial()
	}
	idx := int(r.Page)
	if idx < len(a.Pages) {
		return a.Pages[idx]
	}
	return nil
}

// magentaPlaceholderPage is a sentinel page index used for magenta placeholders.
// It's high enough to never collide with real atlas pages.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() TextureRegion {
	return TextureRegion{
		Page:      magentaPlaceholderPage,
		X:         0,
		Y:         0,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists). Pages become BlendNormal
// materials named after their index.
func LoadAtlas(jsonData []byte, pages []*image.NRGBA) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("outfit: failed to parse atlas JSON: %w", err)
	}

	materials := make([]*Material, len(pages))
	for i, p := range pages {
		materials[i] = NewMaterial(fmt.Sprintf("page-%d", i), p, BlendNormal)
	}
	atlas := NewAtlas(materials)

	if probe.Textures != nil {
		// Multi-page array format
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	} else if probe.Frames != nil {
		// Single-page hash format
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("outfit: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// MarshalAtlas encodes regions in the TexturePacker hash format, the same
// format LoadAtlas reads. Only page 0 regions are written; the packer always
// produces a single page.
func MarshalAtlas(regions map[string]TextureRegion, imageName string, w, h int) ([]byte, error) {
	frames := make(map[string]jsonFrame, len(regions))
	for name, r := range regions {
		if r.Page != 0 {
			continue
		}
		frames[name] = regionToFrame(r)
	}
	doc := struct {
		Frames map[string]jsonFrame `json:"frames"`
		Meta   jsonMeta             `json:"meta"`
	}{
		Frames: frames,
		Meta:   jsonMeta{Image: imageName, Format: "RGBA8888", Size: jsonSize{W: w, H: h}, Scale: 1},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("outfit: encode atlas: %w", err)
	}
	return data, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	Image  string   `json:"image"`
	Format string   `json:"format"`
	Size   jsonSize `json:"size"`
	Scale  float64  `json:"scale"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, pageIndex uint16, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("outfit: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, pageIndex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("outfit: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, uint16(i))
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}

func regionToFrame(r TextureRegion) jsonFrame {
	trimmed := r.OffsetX != 0 || r.OffsetY != 0 ||
		r.OriginalW != r.Width || r.OriginalH != r.Height
	return jsonFrame{
		Frame:            jsonRect{X: int(r.X), Y: int(r.Y), W: int(r.Width), H: int(r.Height)},
		Rotated:          r.Rotated,
		Trimmed:          trimmed,
		SpriteSourceSize: jsonRect{X: int(r.OffsetX), Y: int(r.OffsetY), W: int(r.Width), H: int(r.Height)},
		SourceSize:       jsonSize{W: int(r.OriginalW), H: int(r.OriginalH)},
	}
}

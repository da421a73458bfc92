package outfit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a slot tint is submitted for drawing.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default slot tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5),
		uint8(clamp01(c.A)*255+0.5))
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
// Six-digit colors are fully opaque.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("outfit: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("outfit: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MarshalJSON encodes the color as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a hex string color.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("outfit: color must be a hex string: %w", err)
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Equal reports whether c and other match once quantized to 8 bits per
// channel, which is the precision presets are stored with.
func (c Color) Equal(other Color) bool {
	return c.Hex() == other.Hex()
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// PartType identifies one interchangeable part category of the rig.
type PartType uint8

const (
	PartNone      PartType = iota // sentinel; never selectable
	PartBack                      // capes, wings, backpacks
	PartBeard                     // facial hair
	PartBoots                     // footwear
	PartBottom                    // trousers, skirts
	PartBrow                      // eyebrows
	PartEyes                      // eyes
	PartGloves                    // hand wear
	PartHairShort                 // hair shown without a helmet
	PartHairHat                   // hair shown under a helmet; mirrors PartHairShort
	PartHelmet                    // head wear
	PartMouth                     // mouth
	PartEyewear                   // glasses, masks
	PartGearLeft                  // off-hand item
	PartGearRight                 // main-hand item
	PartTop                       // torso
	PartSkin                      // body skin tone

	partTypeCount
)

var partTypeNames = [partTypeCount]string{
	PartNone:      "None",
	PartBack:      "Back",
	PartBeard:     "Beard",
	PartBoots:     "Boots",
	PartBottom:    "Bottom",
	PartBrow:      "Brow",
	PartEyes:      "Eyes",
	PartGloves:    "Gloves",
	PartHairShort: "Hair_Short",
	PartHairHat:   "Hair_Hat",
	PartHelmet:    "Helmet",
	PartMouth:     "Mouth",
	PartEyewear:   "Eyewear",
	PartGearLeft:  "Gear_Left",
	PartGearRight: "Gear_Right",
	PartTop:       "Top",
	PartSkin:      "Skin",
}

// PartTypes lists every selectable part type (PartNone excluded) in
// declaration order. Composition merges skins in this order.
func PartTypes() []PartType {
	out := make([]PartType, 0, partTypeCount-1)
	for p := PartBack; p < partTypeCount; p++ {
		out = append(out, p)
	}
	return out
}

// String returns the stable tag used in presets ("Hair_Short", "Gear_Left").
func (p PartType) String() string {
	if p < partTypeCount {
		return partTypeNames[p]
	}
	return "PartType(" + strconv.Itoa(int(p)) + ")"
}

// Prefix returns the lowercase skin-name prefix for the part type.
func (p PartType) Prefix() string {
	return strings.ToLower(p.String())
}

// Valid reports whether p is a selectable part type.
func (p PartType) Valid() bool {
	return p > PartNone && p < partTypeCount
}

// ParsePartType parses a tag produced by String. Matching ignores case.
func ParsePartType(s string) (PartType, error) {
	for p := PartNone; p < partTypeCount; p++ {
		if strings.EqualFold(partTypeNames[p], s) {
			return p, nil
		}
	}
	return PartNone, fmt.Errorf("outfit: unknown part type %q", s)
}

// MarshalText implements encoding.TextMarshaler so part types serialize as tags.
func (p PartType) MarshalText() ([]byte, error) {
	if p >= partTypeCount {
		return nil, fmt.Errorf("outfit: invalid part type %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PartType) UnmarshalText(text []byte) error {
	parsed, err := ParsePartType(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

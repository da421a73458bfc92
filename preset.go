package outfit

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PartValue is one persisted part selection.
type PartValue struct {
	Part    PartType `json:"category"`
	Variant int      `json:"variant"`
}

// ColorValue is one persisted color override.
type ColorValue struct {
	Prefix string `json:"prefix"`
	Color  Color  `json:"color"`
}

// Preset is a saved outfit: part indices and color overrides keyed by a
// caller-chosen slot index.
type Preset struct {
	Index  int          `json:"slotIndex"`
	Parts  []PartValue  `json:"parts"`
	Colors []ColorValue `json:"colors"`
}

// PartMap returns the parts as a map.
func (p Preset) PartMap() map[PartType]int {
	out := make(map[PartType]int, len(p.Parts))
	for _, v := range p.Parts {
		out[v.Part] = v.Variant
	}
	return out
}

// ColorMap returns the colors as a map.
func (p Preset) ColorMap() map[string]Color {
	out := make(map[string]Color, len(p.Colors))
	for _, v := range p.Colors {
		out[v.Prefix] = v.Color
	}
	return out
}

// NewPreset builds a preset from maps. Parts are ordered by part type and
// colors by prefix; PartNone entries are dropped.
func NewPreset(index int, parts map[PartType]int, colors map[string]Color) Preset {
	p := Preset{Index: index, Parts: []PartValue{}, Colors: []ColorValue{}}
	for _, pt := range PartTypes() {
		if v, ok := parts[pt]; ok {
			p.Parts = append(p.Parts, PartValue{Part: pt, Variant: v})
		}
	}
	prefixes := make([]string, 0, len(colors))
	for k := range colors {
		prefixes = append(prefixes, k)
	}
	sort.Strings(prefixes)
	for _, k := range prefixes {
		p.Colors = append(p.Colors, ColorValue{Prefix: k, Color: colors[k]})
	}
	return p
}

// PresetStore is an ordered list of presets. At most one preset exists per
// slot index.
type PresetStore struct {
	presets []Preset
}

// NewPresetStore creates an empty store.
func NewPresetStore() *PresetStore {
	return &PresetStore{}
}

// Save replaces the preset at index.
func (s *PresetStore) Save(index int, parts map[PartType]int, colors map[string]Color) {
	s.Put(NewPreset(index, parts, colors))
}

// Put replaces the preset with p.Index by p, appending it at the end.
func (s *PresetStore) Put(p Preset) {
	s.Clear(p.Index)
	s.presets = append(s.presets, p)
}

// Load returns the parts and colors saved at index. Both maps are empty when
// nothing is saved there.
func (s *PresetStore) Load(index int) (map[PartType]int, map[string]Color) {
	p, ok := s.Get(index)
	if !ok {
		return map[PartType]int{}, map[string]Color{}
	}
	return p.PartMap(), p.ColorMap()
}

// Get returns the preset saved at index.
func (s *PresetStore) Get(index int) (Preset, bool) {
	for _, p := range s.presets {
		if p.Index == index {
			return p, true
		}
	}
	return Preset{}, false
}

// Clear removes the preset at index.
func (s *PresetStore) Clear(index int) {
	kept := s.presets[:0]
	for _, p := range s.presets {
		if p.Index != index {
			kept = append(kept, p)
		}
	}
	clear(s.presets[len(kept):])
	s.presets = kept
}

// Len returns the number of presets.
func (s *PresetStore) Len() int {
	return len(s.presets)
}

// Presets returns a copy of the presets in save order.
func (s *PresetStore) Presets() []Preset {
	return append([]Preset(nil), s.presets...)
}

type presetDoc struct {
	Presets []Preset `json:"presets"`
}

// MarshalJSON encodes the store as {"presets": [...]}.
func (s *PresetStore) MarshalJSON() ([]byte, error) {
	doc := presetDoc{Presets: s.presets}
	if doc.Presets == nil {
		doc.Presets = []Preset{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the store's contents. Later presets replace earlier
// ones with the same slot index.
func (s *PresetStore) UnmarshalJSON(data []byte) error {
	var doc presetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("outfit: parse presets: %w", err)
	}
	s.presets = nil
	for _, p := range doc.Presets {
		s.Put(p)
	}
	return nil
}

// SavePreset stores the character's selection and color overrides at slot.
func SavePreset(store *PresetStore, c *Character, slot int) {
	if c.Rig() == nil {
		return
	}
	store.Save(slot, c.Selection(), c.ColorOverrides())
}

// LoadPreset applies the preset at slot to the character and reports whether
// one was found. Colors absent from the preset keep their current value.
func LoadPreset(store *PresetStore, c *Character, slot int) bool {
	p, ok := store.Get(slot)
	if !ok {
		return false
	}
	c.ApplySelection(p.PartMap())
	c.ApplyColorOverrides(p.ColorMap())
	return true
}

// ClearPreset removes the preset at slot.
func ClearPreset(store *PresetStore, slot int) {
	store.Clear(slot)
}

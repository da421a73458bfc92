package outfit

import "strings"

// Slot-name prefixes that the color helpers target.
const (
	PrefixHair       = "hair"
	PrefixHelmetHair = "helmet_hair"
	PrefixBeard      = "beard"
	PrefixBrow       = "brow"
)

// ColorOverrides maps slot-name prefixes to tints. One override applies to
// every slot whose name starts with the prefix (case-insensitive). Insertion
// order is kept so overlapping prefixes resolve deterministically: later
// entries win.
type ColorOverrides struct {
	prefixes []string
	colors   map[string]Color
}

// NewColorOverrides creates an empty store.
func NewColorOverrides() *ColorOverrides {
	return &ColorOverrides{colors: make(map[string]Color)}
}

// Set stores c for prefix, keeping the position of an existing entry.
func (o *ColorOverrides) Set(prefix string, c Color) {
	if _, ok := o.colors[prefix]; !ok {
		o.prefixes = append(o.prefixes, prefix)
	}
	o.colors[prefix] = c
}

// Get returns the override for prefix.
func (o *ColorOverrides) Get(prefix string) (Color, bool) {
	c, ok := o.colors[prefix]
	return c, ok
}

// Delete removes the override for prefix.
func (o *ColorOverrides) Delete(prefix string) {
	if _, ok := o.colors[prefix]; !ok {
		return
	}
	delete(o.colors, prefix)
	for i, p := range o.prefixes {
		if p == prefix {
			o.prefixes = append(o.prefixes[:i], o.prefixes[i+1:]...)
			break
		}
	}
}

// Len returns the number of overrides.
func (o *ColorOverrides) Len() int {
	return len(o.prefixes)
}

// Prefixes returns the prefixes in insertion order.
func (o *ColorOverrides) Prefixes() []string {
	return append([]string(nil), o.prefixes...)
}

// Snapshot returns a copy of the overrides as a map.
func (o *ColorOverrides) Snapshot() map[string]Color {
	out := make(map[string]Color, len(o.colors))
	for k, v := range o.colors {
		out[k] = v
	}
	return out
}

// colorTarget is one resolved (slot, tint) pair.
type colorTarget struct {
	slot  *Slot
	color Color
}

// resolveTargets matches every override against slots. The result can be
// re-applied each frame without scanning slot names again.
func resolveTargets(slots []*Slot, o *ColorOverrides, buf []colorTarget) []colorTarget {
	buf = buf[:0]
	for _, prefix := range o.prefixes {
		c := o.colors[prefix]
		for _, slot := range slotsWithPrefix(slots, prefix) {
			buf = append(buf, colorTarget{slot: slot, color: c})
		}
	}
	return buf
}

// applyTargets writes the resolved tints. Idempotent.
func applyTargets(targets []colorTarget) {
	for _, t := range targets {
		t.slot.Color = t.color
	}
}

// ApplyColors tints every slot whose name starts with an override prefix.
// Applying the same overrides twice yields the same slot colors.
func ApplyColors(slots []*Slot, o *ColorOverrides) {
	if o == nil {
		return
	}
	applyTargets(resolveTargets(slots, o, nil))
}

// slotsWithPrefix returns the slots whose name starts with prefix, ignoring case.
func slotsWithPrefix(slots []*Slot, prefix string) []*Slot {
	lp := strings.ToLower(prefix)
	var out []*Slot
	for _, s := range slots {
		if strings.HasPrefix(strings.ToLower(s.Data.Name), lp) {
			out = append(out, s)
		}
	}
	return out
}

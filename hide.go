package outfit

// HidePolicy decides which part types may be cycled to "nothing equipped"
// by Advance and Randomize.
type HidePolicy interface {
	IsHideable(p PartType) bool
}

// HideableSet is a HidePolicy backed by a set of part types.
type HideableSet map[PartType]bool

// IsHideable implements HidePolicy.
func (s HideableSet) IsHideable(p PartType) bool {
	return s[p]
}

// DefaultHideable lists the parts a character can go without.
var DefaultHideable = HideableSet{
	PartBack:      true,
	PartBeard:     true,
	PartEyewear:   true,
	PartGearLeft:  true,
	PartGearRight: true,
	PartHelmet:    true,
	PartHairShort: true,
}

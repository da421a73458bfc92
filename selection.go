package outfit

// Selection is the per-character part state: one variant index and one
// hidden flag per part type. Index -1 means nothing is equipped.
//
// Writes are permissive; out-of-range indices are stored as given and
// resolve to "not rendered" when read through the catalog.
type Selection struct {
	index  [partTypeCount]int
	hidden [partTypeCount]bool
}

// NewSelection picks the first variant of every non-empty part type and -1
// for empty ones. Nothing is hidden.
func NewSelection(c *Catalog) *Selection {
	s := &Selection{}
	for p := PartBack; p < partTypeCount; p++ {
		if c.Len(p) > 0 {
			s.index[p] = 0
		} else {
			s.index[p] = -1
		}
	}
	s.index[PartNone] = -1
	return s
}

// Index returns the stored index for p, or -1 for PartNone and invalid types.
func (s *Selection) Index(p PartType) int {
	if !p.Valid() {
		return -1
	}
	return s.index[p]
}

// Set stores index for p. PartNone and invalid types are ignored.
func (s *Selection) Set(p PartType, index int) {
	if !p.Valid() {
		return
	}
	s.index[p] = index
}

// Hidden reports the hidden flag for p.
func (s *Selection) Hidden(p PartType) bool {
	if !p.Valid() {
		return false
	}
	return s.hidden[p]
}

// SetHidden stores the hidden flag for p.
func (s *Selection) SetHidden(p PartType, hidden bool) {
	if !p.Valid() {
		return
	}
	s.hidden[p] = hidden
}

// Visible reports whether p has an in-range variant and is not hidden.
func (s *Selection) Visible(c *Catalog, p PartType) bool {
	return !s.Hidden(p) && c.Name(p, s.Index(p)) != ""
}

// syncHatHair mirrors the short-hair selection onto the helmet-hair variant.
func (s *Selection) syncHatHair() {
	s.index[PartHairHat] = s.index[PartHairShort]
}

// Indices returns a copy of the index of every selectable part type.
func (s *Selection) Indices() map[PartType]int {
	out := make(map[PartType]int, partTypeCount-1)
	for p := PartBack; p < partTypeCount; p++ {
		out[p] = s.index[p]
	}
	return out
}

// HiddenParts returns a copy of the hidden flag of every selectable part type.
func (s *Selection) HiddenParts() map[PartType]bool {
	out := make(map[PartType]bool, partTypeCount-1)
	for p := PartBack; p < partTypeCount; p++ {
		out[p] = s.hidden[p]
	}
	return out
}

// step moves the index of p one variant in dir (+1 or -1) and reports
// whether anything changed. Hideable parts pass through -1 at the boundary;
// others wrap modulo the variant count. An empty variant list is a no-op.
func (s *Selection) step(p PartType, dir, n int, hideable bool) bool {
	if !p.Valid() || n == 0 || dir == 0 {
		return false
	}
	cur := s.index[p]
	var next int
	if hideable {
		if dir > 0 {
			if cur >= n-1 {
				next = -1
			} else {
				next = cur + 1
			}
		} else {
			if cur <= -1 {
				next = n - 1
			} else {
				next = cur - 1
			}
		}
	} else {
		if dir > 0 {
			next = (cur + 1) % n
		} else {
			next = (cur - 1 + n) % n
		}
		if next < 0 {
			next += n
		}
	}
	s.index[p] = next
	return true
}

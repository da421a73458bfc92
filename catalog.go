package outfit

import "strings"

// Catalog lists the variant skin names available for each part type of one
// rig. It is read-only once built and can be shared by every Character bound
// to the same rig.
type Catalog struct {
	variants [partTypeCount][]string
}

// NewCatalog sorts skin names into part types by case-insensitive prefix
// match against PartType.Prefix. Order within a part type follows the input.
// A name is assigned to every part type whose prefix it carries.
func NewCatalog(skinNames []string) *Catalog {
	c := &Catalog{}
	for _, name := range skinNames {
		lower := strings.ToLower(name)
		for p := PartBack; p < partTypeCount; p++ {
			if strings.HasPrefix(lower, p.Prefix()) {
				c.variants[p] = append(c.variants[p], name)
			}
		}
	}
	return c
}

// CatalogFromRig builds a catalog from the rig's skin names. A nil rig yields
// an empty catalog.
func CatalogFromRig(rig Rig) *Catalog {
	if rig == nil {
		return &Catalog{}
	}
	return NewCatalog(rig.SkinNames())
}

// Variants returns a copy of the variant names for p. PartNone and invalid
// part types yield nil.
func (c *Catalog) Variants(p PartType) []string {
	if c == nil || !p.Valid() {
		return nil
	}
	return append([]string(nil), c.variants[p]...)
}

// Len returns the number of variants for p.
func (c *Catalog) Len(p PartType) int {
	if c == nil || !p.Valid() {
		return 0
	}
	return len(c.variants[p])
}

// Name returns the variant name at index, or "" when index is out of range.
// The empty string is the canonical "no part" signal.
func (c *Catalog) Name(p PartType, index int) string {
	if c == nil || !p.Valid() {
		return ""
	}
	list := c.variants[p]
	if index < 0 || index >= len(list) {
		return ""
	}
	return list[index]
}

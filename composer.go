package outfit

// CompositeSkinName is the name of every skin built by Compose.
const CompositeSkinName = "character-combined"

// SkinLookup resolves a variant name to its skin data. Rig.FindSkin satisfies it.
type SkinLookup func(name string) *Skin

// Composite is the result of one composition pass.
type Composite struct {
	// Skin is the union of the contributing variant skins.
	Skin *Skin
	// Parts lists the part types that contributed, in merge order.
	Parts []PartType
	// Missing lists selected variant names the lookup could not resolve.
	Missing []string
}

// Contributes reports whether p contributed to the composite.
func (c Composite) Contributes(p PartType) bool {
	for _, q := range c.Parts {
		if q == p {
			return true
		}
	}
	return false
}

// Compose derives the composite skin for sel. It never mutates its inputs.
//
// Exactly one of PartHairShort and PartHairHat is considered: helmet hair
// when a visible, in-range helmet is selected, short hair otherwise. Parts
// whose index is out of range, that are hidden, or whose skin is unknown
// contribute nothing.
func Compose(c *Catalog, sel *Selection, lookup SkinLookup) Composite {
	out := Composite{Skin: NewSkin(CompositeSkinName)}
	helmetEquipped := sel.Visible(c, PartHelmet)

	for p := PartBack; p < partTypeCount; p++ {
		if p == PartHairShort && helmetEquipped {
			continue
		}
		if p == PartHairHat && !helmetEquipped {
			continue
		}
		if sel.Hidden(p) {
			continue
		}
		name := c.Name(p, sel.Index(p))
		if name == "" {
			continue
		}
		var skin *Skin
		if lookup != nil {
			skin = lookup(name)
		}
		if skin == nil {
			out.Missing = append(out.Missing, name)
			continue
		}
		out.Skin.AddSkin(skin)
		out.Parts = append(out.Parts, p)
	}
	return out
}

package outfit

import (
	"reflect"
	"testing"
)

// composeFixture builds a catalog and lookup where every variant skin maps
// one attachment named after itself onto its own slot.
func composeFixture(names ...string) (*Catalog, SkinLookup, map[string]*Skin) {
	skins := make(map[string]*Skin, len(names))
	for i, n := range names {
		s := NewSkin(n)
		s.SetAttachment(i, n, &Attachment{Name: n})
		skins[n] = s
	}
	return NewCatalog(names), func(name string) *Skin { return skins[name] }, skins
}

func attachmentNames(s *Skin) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestCompose_HelmetHidesShortHair(t *testing.T) {
	c, lookup, _ := composeFixture("Helmet_1", "Hair_Short_1", "Hair_Hat_1")
	sel := NewSelection(c)

	comp := Compose(c, sel, lookup)
	if comp.Contributes(PartHairShort) {
		t.Error("Hair_Short contributed while a helmet is equipped")
	}
	if !comp.Contributes(PartHairHat) || !comp.Contributes(PartHelmet) {
		t.Errorf("parts = %v, want Helmet and Hair_Hat", comp.Parts)
	}
	if comp.Skin.Name != CompositeSkinName {
		t.Errorf("skin name = %q, want %q", comp.Skin.Name, CompositeSkinName)
	}
}

func TestCompose_NoHelmetUsesShortHair(t *testing.T) {
	c, lookup, _ := composeFixture("Helmet_1", "Hair_Short_1", "Hair_Hat_1")
	for name, mutate := range map[string]func(*Selection){
		"none":         func(s *Selection) { s.Set(PartHelmet, -1) },
		"hidden":       func(s *Selection) { s.SetHidden(PartHelmet, true) },
		"out of range": func(s *Selection) { s.Set(PartHelmet, 4) },
	} {
		t.Run(name, func(t *testing.T) {
			sel := NewSelection(c)
			mutate(sel)
			comp := Compose(c, sel, lookup)
			if !comp.Contributes(PartHairShort) {
				t.Error("Hair_Short missing without a visible helmet")
			}
			if comp.Contributes(PartHairHat) || comp.Contributes(PartHelmet) {
				t.Errorf("parts = %v, want no helmet or hat hair", comp.Parts)
			}
		})
	}
}

func TestCompose_HiddenAndOutOfRangeSkipped(t *testing.T) {
	c, lookup, _ := composeFixture("Top_1", "Boots_1", "Eyes_1")
	sel := NewSelection(c)
	sel.SetHidden(PartBoots, true)
	sel.Set(PartEyes, 3)

	comp := Compose(c, sel, lookup)
	if got := attachmentNames(comp.Skin); !reflect.DeepEqual(got, []string{"Top_1"}) {
		t.Errorf("attachments = %v, want [Top_1]", got)
	}
	if len(comp.Missing) != 0 {
		t.Errorf("missing = %v, want none", comp.Missing)
	}
}

func TestCompose_MissingSkinCollected(t *testing.T) {
	c, _, skins := composeFixture("Top_1", "Boots_1")
	delete(skins, "Boots_1")
	lookup := func(name string) *Skin { return skins[name] }

	comp := Compose(c, NewSelection(c), lookup)
	if !reflect.DeepEqual(comp.Missing, []string{"Boots_1"}) {
		t.Errorf("missing = %v, want [Boots_1]", comp.Missing)
	}
	if !reflect.DeepEqual(comp.Parts, []PartType{PartTop}) {
		t.Errorf("parts = %v, want [Top]", comp.Parts)
	}
}

func TestCompose_MergeOrderFollowsPartType(t *testing.T) {
	// Both skins map the same (slot, name) key; the later part type wins.
	back := NewSkin("Back_1")
	back.SetAttachment(0, "shared", &Attachment{Name: "from-back"})
	top := NewSkin("Top_1")
	top.SetAttachment(0, "shared", &Attachment{Name: "from-top"})
	skins := map[string]*Skin{"Back_1": back, "Top_1": top}
	c := NewCatalog([]string{"Top_1", "Back_1"})

	comp := Compose(c, NewSelection(c), func(n string) *Skin { return skins[n] })
	if got := comp.Skin.Attachment(0, "shared").Name; got != "from-top" {
		t.Errorf("shared attachment = %s, want from-top", got)
	}
	if !reflect.DeepEqual(comp.Parts, []PartType{PartBack, PartTop}) {
		t.Errorf("parts = %v, want [Back Top]", comp.Parts)
	}
}

func TestCompose_DoesNotMutateInputs(t *testing.T) {
	c, lookup, skins := composeFixture("Helmet_1", "Hair_Short_1", "Hair_Hat_1")
	sel := NewSelection(c)
	sel.Set(PartHairShort, 0)
	sel.Set(PartHairHat, -1)
	before := sel.Indices()

	Compose(c, sel, lookup)
	if !reflect.DeepEqual(sel.Indices(), before) {
		t.Error("Compose changed the selection")
	}
	if skins["Helmet_1"].Len() != 1 {
		t.Error("Compose changed a source skin")
	}
}

func TestCompose_NilLookup(t *testing.T) {
	c := NewCatalog([]string{"Top_1"})
	comp := Compose(c, NewSelection(c), nil)
	if comp.Skin.Len() != 0 || len(comp.Missing) != 1 {
		t.Errorf("skin len = %d, missing = %v", comp.Skin.Len(), comp.Missing)
	}
}

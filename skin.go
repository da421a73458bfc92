package outfit

import "sort"

// Attachment is one image that can be placed in a slot.
type Attachment struct {
	Name     string
	Region   TextureRegion
	Material *Material
}

type skinKey struct {
	slot int
	name string
}

// SkinEntry is one (slot, attachment) pair of a skin.
type SkinEntry struct {
	SlotIndex  int
	Name       string
	Attachment *Attachment
}

// Skin is a named bundle of attachment-to-slot mappings. A composite skin is
// the union of several part skins.
type Skin struct {
	Name        string
	attachments map[skinKey]*Attachment
}

// NewSkin creates an empty skin.
func NewSkin(name string) *Skin {
	return &Skin{Name: name, attachments: make(map[skinKey]*Attachment)}
}

// SetAttachment maps name on the slot at slotIndex to a. A nil attachment
// removes the mapping.
func (s *Skin) SetAttachment(slotIndex int, name string, a *Attachment) {
	k := skinKey{slot: slotIndex, name: name}
	if a == nil {
		delete(s.attachments, k)
		return
	}
	s.attachments[k] = a
}

// Attachment returns the attachment mapped to name on the slot, or nil.
func (s *Skin) Attachment(slotIndex int, name string) *Attachment {
	if s == nil {
		return nil
	}
	return s.attachments[skinKey{slot: slotIndex, name: name}]
}

// AddSkin copies every mapping of other into s. Entries from other replace
// entries with the same key.
func (s *Skin) AddSkin(other *Skin) {
	if other == nil {
		return
	}
	for k, a := range other.attachments {
		s.attachments[k] = a
	}
}

// Clear removes every mapping.
func (s *Skin) Clear() {
	clear(s.attachments)
}

// Len returns the number of mappings.
func (s *Skin) Len() int {
	if s == nil {
		return 0
	}
	return len(s.attachments)
}

// Entries returns the mappings ordered by slot index, then name.
func (s *Skin) Entries() []SkinEntry {
	if s == nil {
		return nil
	}
	out := make([]SkinEntry, 0, len(s.attachments))
	for k, a := range s.attachments {
		out = append(out, SkinEntry{SlotIndex: k.slot, Name: k.name, Attachment: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotIndex != out[j].SlotIndex {
			return out[i].SlotIndex < out[j].SlotIndex
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// slotAttachment returns the first attachment (by name) the skin maps to
// slotIndex. Used to resolve the setup pose of a slot.
func (s *Skin) slotAttachment(slotIndex int, preferred string) *Attachment {
	if s == nil {
		return nil
	}
	if preferred != "" {
		if a := s.attachments[skinKey{slot: slotIndex, name: preferred}]; a != nil {
			return a
		}
	}
	var best *Attachment
	bestName := ""
	for k, a := range s.attachments {
		if k.slot != slotIndex {
			continue
		}
		if best == nil || k.name < bestName {
			best, bestName = a, k.name
		}
	}
	return best
}

package outfit

import (
	"encoding/json"
	"fmt"
)

// rigFile is the JSON layout read by LoadSkeletonData.
//
//	{
//	  "name": "hero",
//	  "slots": [{"name": "hair", "color": "#ffffffff", "attachment": "hair"}],
//	  "skins": [{"name": "hair_short_1", "attachments": {"hair": {"hair": "hair_short_1"}}}],
//	  "animations": [{"name": "blink", "duration": 0.5, "tracks": [
//	    {"slot": "eyes", "from": "#ffffffff", "to": "#ffffff00", "ease": "inOutSine"}]}]
//	}
//
// Skin attachments map slot name → attachment name → atlas region name.
type rigFile struct {
	Name       string         `json:"name"`
	Slots      []rigSlot      `json:"slots"`
	Skins      []rigSkin      `json:"skins"`
	Animations []rigAnimation `json:"animations"`
}

type rigSlot struct {
	Name       string `json:"name"`
	Color      *Color `json:"color,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

type rigSkin struct {
	Name        string                       `json:"name"`
	Attachments map[string]map[string]string `json:"attachments"`
}

type rigAnimation struct {
	Name     string     `json:"name"`
	Duration float32    `json:"duration"`
	Tracks   []rigTrack `json:"tracks"`
}

type rigTrack struct {
	Slot string `json:"slot"`
	From Color  `json:"from"`
	To   Color  `json:"to"`
	Ease string `json:"ease,omitempty"`
}

// LoadSkeletonData parses a JSON rig description whose attachments reference
// regions of atlas. Regions missing from the atlas resolve to the magenta
// placeholder. Slots without a color default to white.
func LoadSkeletonData(jsonData []byte, atlas *Atlas) (*SkeletonData, error) {
	var f rigFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("outfit: parse rig: %w", err)
	}
	if atlas == nil {
		atlas = NewAtlas(nil)
	}

	data := &SkeletonData{Name: f.Name, Materials: atlas.Pages}
	for i, s := range f.Slots {
		if s.Name == "" {
			return nil, fmt.Errorf("outfit: parse rig: slot %d has no name", i)
		}
		if data.FindSlot(s.Name) >= 0 {
			return nil, fmt.Errorf("outfit: parse rig: duplicate slot %q", s.Name)
		}
		col := ColorWhite
		if s.Color != nil {
			col = *s.Color
		}
		data.Slots = append(data.Slots, &SlotData{Index: i, Name: s.Name, Color: col, Attachment: s.Attachment})
	}

	for _, rs := range f.Skins {
		if data.FindSkin(rs.Name) != nil {
			return nil, fmt.Errorf("outfit: parse rig: duplicate skin %q", rs.Name)
		}
		skin := NewSkin(rs.Name)
		for slotName, entries := range rs.Attachments {
			idx := data.FindSlot(slotName)
			if idx < 0 {
				return nil, fmt.Errorf("outfit: parse rig: skin %q: unknown slot %q", rs.Name, slotName)
			}
			for name, regionName := range entries {
				if regionName == "" {
					regionName = name
				}
				r := atlas.Region(regionName)
				skin.SetAttachment(idx, name, &Attachment{Name: regionName, Region: r, Material: atlas.Material(r)})
			}
		}
		data.Skins = append(data.Skins, skin)
	}

	for _, ra := range f.Animations {
		a := &Animation{Name: ra.Name, Duration: ra.Duration}
		for _, t := range ra.Tracks {
			if data.FindSlot(t.Slot) < 0 {
				return nil, fmt.Errorf("outfit: parse rig: animation %q: unknown slot %q", ra.Name, t.Slot)
			}
			a.Tracks = append(a.Tracks, ColorTrack{Slot: t.Slot, From: t.From, To: t.To, Ease: EaseByName(t.Ease)})
		}
		data.Animations = append(data.Animations, a)
	}
	return data, nil
}

package outfit

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// scriptStep represents a single action in an outfit script.
type scriptStep struct {
	Action string `json:"action"`
	Part   string `json:"part,omitempty"`
	Index  int    `json:"index,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Color  string `json:"color,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	Name   string `json:"name,omitempty"`
	Loop   bool   `json:"loop,omitempty"`
	Label  string `json:"label,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`

	part  PartType
	color Color
}

// scriptDoc is the top-level JSON structure for a script.
type scriptDoc struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed list of customization steps applied to a character in
// order. Supported actions:
//
//	equip     part, index
//	next      part
//	prev      part
//	hide      part
//	show      part
//	color     prefix, color ("#rrggbb" or "#rrggbbaa")
//	random    seed
//	optimize
//	save      slot
//	load      slot
//	clear     slot
//	animation name, loop
//	export    label
type Script struct {
	// OutputDir receives the files written by "export" steps. Default ".".
	OutputDir string
	// Format of exported pages. Default FormatWebP.
	Format ImageFormat

	steps []scriptStep
}

// LoadScript parses a JSON script. Part names and colors are validated up
// front so a bad script fails before touching a character.
func LoadScript(jsonData []byte) (*Script, error) {
	var doc scriptDoc
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("outfit: parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("outfit: parse script: no steps")
	}
	for i := range doc.Steps {
		st := &doc.Steps[i]
		switch st.Action {
		case "equip", "next", "prev", "hide", "show":
			p, err := ParsePartType(st.Part)
			if err != nil || !p.Valid() {
				return nil, fmt.Errorf("outfit: parse script: step %d: bad part %q", i, st.Part)
			}
			st.part = p
		case "color":
			if st.Prefix == "" {
				return nil, fmt.Errorf("outfit: parse script: step %d: color without prefix", i)
			}
			c, err := ParseHexColor(st.Color)
			if err != nil {
				return nil, fmt.Errorf("outfit: parse script: step %d: %w", i, err)
			}
			st.color = c
		case "random", "optimize", "save", "load", "clear", "animation", "export":
		default:
			return nil, fmt.Errorf("outfit: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{OutputDir: ".", steps: doc.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run applies every step to c. presets backs the save, load and clear
// steps and may be nil when the script uses none of them. Run stops at the
// first failing step.
func (s *Script) Run(c *Character, presets *PresetStore) error {
	if c.Rig() == nil {
		return ErrNoRig
	}
	for i, st := range s.steps {
		if err := s.run(c, presets, st); err != nil {
			return fmt.Errorf("outfit: script step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (s *Script) run(c *Character, presets *PresetStore, st scriptStep) error {
	switch st.Action {
	case "equip":
		c.SetVariant(st.part, st.Index)
	case "next":
		c.Advance(st.part, 1)
	case "prev":
		c.Advance(st.part, -1)
	case "hide":
		c.SetHidden(st.part, true)
	case "show":
		c.SetHidden(st.part, false)
	case "color":
		if st.Prefix == PrefixHair {
			c.SetHairColor(st.color)
		} else {
			c.SetColorOverride(st.Prefix, st.color)
		}
	case "random":
		c.Randomize(rand.New(rand.NewPCG(st.Seed, st.Seed)))
	case "optimize":
		return c.OptimizeAtlas()
	case "save", "load", "clear":
		if presets == nil {
			return fmt.Errorf("no preset store")
		}
		switch st.Action {
		case "save":
			SavePreset(presets, c, st.Slot)
		case "load":
			if !LoadPreset(presets, c, st.Slot) {
				return fmt.Errorf("no preset in slot %d", st.Slot)
			}
		case "clear":
			ClearPreset(presets, st.Slot)
		}
	case "animation":
		if !c.PlayAnimation(st.Name, st.Loop) {
			return fmt.Errorf("unknown animation %q", st.Name)
		}
	case "export":
		dir := s.OutputDir
		if dir == "" {
			dir = "."
		}
		if _, err := ExportAtlas(c, dir, st.Label, s.Format); err != nil {
			return err
		}
	}
	return nil
}

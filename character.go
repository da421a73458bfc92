package outfit

import (
	"errors"
	"log"
	"math/rand/v2"
	"sort"
	"time"
)

// ErrNoRig is returned by operations that need a bound rig.
var ErrNoRig = errors.New("outfit: character has no rig")

// State is the lifecycle stage of a Character.
type State uint8

const (
	StateUninitialized State = iota // created, Initialize not called
	StateInitialized                // catalog and selection built
	StateComposing                  // rebuilding the composite skin
	StateOptimizing                 // repacking the atlas
	StateIdle                       // composite bound, waiting for changes
	StateDisposed                   // generated resources released
)

var stateNames = [...]string{"uninitialized", "initialized", "composing", "optimizing", "idle", "disposed"}

// String returns the lowercase stage name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Options configures a Character. Zero values select the defaults.
type Options struct {
	// Catalog to use instead of scanning the rig's skin names. Characters
	// bound to the same rig definition may share one.
	Catalog *Catalog
	// Hideable decides which parts cycle through "nothing equipped".
	// Default DefaultHideable.
	Hideable HidePolicy
	// Optimize repacks the atlas after every composite refresh.
	Optimize bool
	// Packer used by the optimizer. Default ShelfPacker.
	Packer Packer
	// BaseMaterial supplies the blend mode and name of generated materials.
	BaseMaterial *Material
}

// Character owns the customization state of one rig instance: the part
// selection, visibility flags, color overrides and the generated atlas.
//
// A Character with a nil rig accepts every call and does nothing.
type Character struct {
	rig       Rig
	opts      Options
	catalog   *Catalog
	sel       *Selection
	colors    *ColorOverrides
	targets   []colorTarget
	composite Composite
	optimizer *AtlasOptimizer
	state     State

	listeners      []listener
	nextListenerID int
	sink           EventSink
}

// NewCharacter creates a character for rig. Call Initialize before use.
func NewCharacter(rig Rig, opts Options) *Character {
	if opts.Hideable == nil {
		opts.Hideable = DefaultHideable
	}
	return &Character{
		rig:       rig,
		opts:      opts,
		colors:    NewColorOverrides(),
		optimizer: NewAtlasOptimizer(opts.Packer, opts.BaseMaterial),
	}
}

// Rig returns the bound rig, or nil.
func (c *Character) Rig() Rig { return c.rig }

// Catalog returns the catalog, or nil before Initialize.
func (c *Character) Catalog() *Catalog { return c.catalog }

// State returns the lifecycle stage.
func (c *Character) State() State { return c.state }

// Composite returns the result of the last composition.
func (c *Character) Composite() Composite { return c.composite }

// Optimizer returns the atlas optimizer.
func (c *Character) Optimizer() *AtlasOptimizer { return c.optimizer }

// Material returns the generated atlas material, or nil when the atlas has
// not been repacked.
func (c *Character) Material() *Material { return c.optimizer.Material() }

func (c *Character) ready() bool {
	return c.rig != nil && c.sel != nil && c.state != StateDisposed
}

// Initialize builds the catalog and a default selection, then composes the
// first skin. Calling it again resets the selection.
func (c *Character) Initialize() {
	if c.rig == nil || c.state == StateDisposed {
		return
	}
	c.catalog = c.opts.Catalog
	if c.catalog == nil {
		c.catalog = CatalogFromRig(c.rig)
	}
	c.sel = NewSelection(c.catalog)
	c.state = StateInitialized
	c.RefreshComposite()
}

// Rescan rebuilds the catalog from the rig's current skin names, keeping the
// selection, and recomposes.
func (c *Character) Rescan() {
	if !c.ready() {
		return
	}
	c.catalog = CatalogFromRig(c.rig)
	c.RefreshComposite()
}

// SetVariant equips variant index of p. Equipping a helmet selects the first
// helmet-hair variant. The index is not bounds-checked; an out-of-range index
// renders nothing for p. Hair_Hat follows Hair_Short and cannot be set.
func (c *Character) SetVariant(p PartType, index int) {
	if !c.ready() || !p.Valid() || p == PartHairHat {
		return
	}
	c.sel.Set(p, index)
	if p == PartHelmet && index >= 0 && c.catalog.Len(PartHairHat) > 0 {
		c.sel.Set(PartHairHat, 0)
	}
	c.emit(Event{Type: EventPartChanged, Part: p, Index: index})
	c.RefreshComposite()
}

// Advance steps p to the next (dir > 0) or previous (dir < 0) variant.
// Hideable parts pass through "nothing equipped" at the end of the list;
// others wrap around.
func (c *Character) Advance(p PartType, dir int) {
	if !c.ready() || p == PartHairHat {
		return
	}
	if !c.sel.step(p, dir, c.catalog.Len(p), c.opts.Hideable.IsHideable(p)) {
		return
	}
	c.emit(Event{Type: EventPartChanged, Part: p, Index: c.sel.Index(p)})
	c.RefreshComposite()
}

// SetHidden hides or shows p without changing its selected variant.
func (c *Character) SetHidden(p PartType, hidden bool) {
	if !c.ready() || !p.Valid() {
		return
	}
	c.sel.SetHidden(p, hidden)
	c.emit(Event{Type: EventVisibilityChanged, Part: p, Hidden: hidden})
	c.RefreshComposite()
}

// IsHidden reports the hidden flag of p.
func (c *Character) IsHidden(p PartType) bool {
	if c.sel == nil {
		return false
	}
	return c.sel.Hidden(p)
}

// CurrentIndex returns the selected variant index of p, or -1.
func (c *Character) CurrentIndex(p PartType) int {
	if c.sel == nil {
		return -1
	}
	return c.sel.Index(p)
}

// VariantNames returns a copy of the variant names of p.
func (c *Character) VariantNames(p PartType) []string {
	return c.catalog.Variants(p)
}

// CurrentVariantName returns the selected variant name of p, or "" when
// nothing in range is selected.
func (c *Character) CurrentVariantName(p PartType) string {
	if c.sel == nil {
		return ""
	}
	return c.catalog.Name(p, c.sel.Index(p))
}

// Selection returns a copy of the selected index of every part type.
func (c *Character) Selection() map[PartType]int {
	if c.sel == nil {
		return map[PartType]int{}
	}
	return c.sel.Indices()
}

// Visibility returns a copy of the hidden flag of every part type.
func (c *Character) Visibility() map[PartType]bool {
	if c.sel == nil {
		return map[PartType]bool{}
	}
	return c.sel.HiddenParts()
}

// ApplySelection replaces the indices of the listed parts and recomposes
// once. An empty map changes nothing; a Hair_Hat entry is ignored.
func (c *Character) ApplySelection(parts map[PartType]int) {
	if !c.ready() || len(parts) == 0 {
		return
	}
	changed := false
	for _, p := range PartTypes() {
		idx, ok := parts[p]
		if !ok || p == PartHairHat {
			continue
		}
		c.sel.Set(p, idx)
		c.emit(Event{Type: EventPartChanged, Part: p, Index: idx})
		changed = true
	}
	if changed {
		c.RefreshComposite()
	}
}

// ApplyVisibility replaces the hidden flags of the listed parts and
// recomposes once.
func (c *Character) ApplyVisibility(hidden map[PartType]bool) {
	if !c.ready() || len(hidden) == 0 {
		return
	}
	changed := false
	for _, p := range PartTypes() {
		h, ok := hidden[p]
		if !ok {
			continue
		}
		c.sel.SetHidden(p, h)
		c.emit(Event{Type: EventVisibilityChanged, Part: p, Hidden: h})
		changed = true
	}
	if changed {
		c.RefreshComposite()
	}
}

// Randomize picks a random variant for every part type except Hair_Hat,
// which follows Hair_Short. Hideable parts end up with nothing equipped 30%
// of the time.
func (c *Character) Randomize(r *rand.Rand) {
	if !c.ready() || r == nil {
		return
	}
	for _, p := range PartTypes() {
		if p == PartHairHat {
			continue
		}
		n := c.catalog.Len(p)
		idx := -1
		if n > 0 && !(c.opts.Hideable.IsHideable(p) && r.Float64() < 0.3) {
			idx = r.IntN(n)
		}
		c.sel.Set(p, idx)
		c.emit(Event{Type: EventPartChanged, Part: p, Index: idx})
	}
	c.RefreshComposite()
}

// RefreshComposite rebuilds the composite skin from the selection, binds it
// in setup pose and re-applies the color overrides. With Options.Optimize
// set the atlas is repacked afterwards; a packing failure leaves the
// unpacked composite bound.
func (c *Character) RefreshComposite() {
	if !c.ready() {
		return
	}
	c.state = StateComposing
	start := time.Now()

	c.sel.syncHatHair()
	comp := Compose(c.catalog, c.sel, c.rig.FindSkin)
	for _, name := range comp.Missing {
		log.Printf("outfit: skin %q not found in rig, skipping", name)
	}
	c.rig.SetSkin(comp.Skin)
	c.rig.SetSlotsToSetupPose()
	c.composite = comp
	c.resolveColors()
	c.applyColors()
	if !c.opts.Optimize {
		// The generated page belonged to the previous composite.
		c.optimizer.Release()
	}

	stats := refreshStats{composeTime: time.Since(start), parts: len(comp.Parts), missing: len(comp.Missing)}
	if c.opts.Optimize {
		start = time.Now()
		if err := c.optimize(); err != nil && debugEnabled {
			log.Printf("outfit: %v", err)
		}
		stats.optimizeTime = time.Since(start)
	}
	c.state = StateIdle
	if debugEnabled {
		stats.drawCalls = DrawCalls(c.rig)
		debugLog(stats)
	}
}

// OptimizeAtlas repacks the bound composite into one generated material and
// binds the repacked skin. It does nothing when no skin is bound. On failure
// the unpacked composite stays bound and the error is returned.
func (c *Character) OptimizeAtlas() error {
	if c.rig == nil {
		return ErrNoRig
	}
	if !c.ready() || c.rig.Skin() == nil {
		return nil
	}
	err := c.optimize()
	c.state = StateIdle
	return err
}

func (c *Character) optimize() error {
	c.state = StateOptimizing
	err := c.optimizer.Optimize(c.rig, c.composite.Skin)
	c.applyColors()
	return err
}

// SetColorOverride tints every slot whose name starts with prefix.
func (c *Character) SetColorOverride(prefix string, col Color) {
	if !c.ready() {
		return
	}
	c.colors.Set(prefix, col)
	c.emit(Event{Type: EventColorChanged, Prefix: prefix, Color: col})
	c.resolveColors()
	c.applyColors()
}

// ColorOverride returns the override stored for prefix.
func (c *Character) ColorOverride(prefix string) (Color, bool) {
	return c.colors.Get(prefix)
}

// ColorOverrides returns a copy of every override.
func (c *Character) ColorOverrides() map[string]Color {
	return c.colors.Snapshot()
}

// ApplyColorOverrides stores several overrides at once. Prefixes are applied
// in sorted order.
func (c *Character) ApplyColorOverrides(colors map[string]Color) {
	if !c.ready() || len(colors) == 0 {
		return
	}
	prefixes := make([]string, 0, len(colors))
	for p := range colors {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		c.colors.Set(p, colors[p])
		c.emit(Event{Type: EventColorChanged, Prefix: p, Color: colors[p]})
	}
	c.resolveColors()
	c.applyColors()
}

// ClearColorOverride removes the override for prefix and restores the setup
// colors of the slots it tinted.
func (c *Character) ClearColorOverride(prefix string) {
	if !c.ready() {
		return
	}
	if _, ok := c.colors.Get(prefix); !ok {
		return
	}
	c.colors.Delete(prefix)
	c.rig.SetSlotsToSetupPose()
	c.rig.ApplyAnimation()
	c.resolveColors()
	c.applyColors()
}

// SetHairColor tints short hair and the hair shown under a helmet.
func (c *Character) SetHairColor(col Color) {
	if !c.ready() {
		return
	}
	c.colors.Set(PrefixHair, col)
	c.colors.Set(PrefixHelmetHair, col)
	c.emit(Event{Type: EventColorChanged, Prefix: PrefixHair, Color: col})
	c.emit(Event{Type: EventColorChanged, Prefix: PrefixHelmetHair, Color: col})
	c.resolveColors()
	c.applyColors()
}

// SetBeardColor tints the beard slots.
func (c *Character) SetBeardColor(col Color) { c.SetColorOverride(PrefixBeard, col) }

// SetBrowColor tints the brow slots.
func (c *Character) SetBrowColor(col Color) { c.SetColorOverride(PrefixBrow, col) }

func (c *Character) resolveColors() {
	c.targets = resolveTargets(c.rig.Slots(), c.colors, c.targets)
}

func (c *Character) applyColors() {
	applyTargets(c.targets)
}

// PlayAnimation starts the named clip and reports whether it exists.
func (c *Character) PlayAnimation(name string, loop bool) bool {
	if !c.ready() {
		return false
	}
	if !c.rig.SetAnimation(name, loop) {
		return false
	}
	c.rig.ApplyAnimation()
	c.applyColors()
	return true
}

// AnimationNames lists the rig's animation clips.
func (c *Character) AnimationNames() []string {
	if c.rig == nil {
		return nil
	}
	return c.rig.AnimationNames()
}

// Update advances the animation by dt seconds and re-applies the color
// overrides the animation may have overwritten. Call once per frame.
func (c *Character) Update(dt float32) {
	if !c.ready() {
		return
	}
	c.rig.Update(dt)
	if len(c.targets) > 0 && c.rig.HasAnimation() {
		c.applyColors()
	}
}

// DrawCalls estimates the draw calls of the bound pose.
func (c *Character) DrawCalls() int {
	return DrawCalls(c.rig)
}

// Dispose releases the generated atlas. The character ignores every call
// afterwards.
func (c *Character) Dispose() {
	if c.state == StateDisposed {
		return
	}
	c.optimizer.Release()
	c.listeners = nil
	c.sink = nil
	c.state = StateDisposed
}

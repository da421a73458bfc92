package outfit

import (
	"bytes"
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"reflect"
	"strings"
	"testing"
)

func newDemoCharacter(t *testing.T, opts Options) (*Character, *Skeleton) {
	t.Helper()
	data, _ := DemoSkeletonData()
	sk := NewSkeleton(data)
	c := NewCharacter(sk, opts)
	c.Initialize()
	t.Cleanup(c.Dispose)
	return c, sk
}

func slotAttachmentName(sk *Skeleton, slot string) string {
	s := sk.FindSlot(slot)
	if s == nil || s.Attachment == nil {
		return ""
	}
	return s.Attachment.Name
}

func TestCharacter_Initialize(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})

	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
	for _, p := range PartTypes() {
		if got := c.CurrentIndex(p); got != 0 {
			t.Errorf("%v index = %d, want 0", p, got)
		}
	}
	if sk.Skin() == nil || sk.Skin().Name != CompositeSkinName {
		t.Fatalf("bound skin = %v, want %s", sk.Skin(), CompositeSkinName)
	}
	if got := slotAttachmentName(sk, "top"); got != "Top_1" {
		t.Errorf("top attachment = %q, want Top_1", got)
	}
}

func TestCharacter_HelmetHidesShortHair(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})

	comp := c.Composite()
	if comp.Contributes(PartHairShort) || !comp.Contributes(PartHairHat) {
		t.Errorf("with helmet: parts = %v, want helmet hair only", comp.Parts)
	}
	if got := slotAttachmentName(sk, "hair"); got != "" {
		t.Errorf("hair slot = %q, want empty", got)
	}
	if got := slotAttachmentName(sk, "helmet_hair"); got != "Hair_Hat_1" {
		t.Errorf("helmet_hair slot = %q, want Hair_Hat_1", got)
	}

	c.SetHidden(PartHelmet, true)
	comp = c.Composite()
	if !comp.Contributes(PartHairShort) || comp.Contributes(PartHairHat) || comp.Contributes(PartHelmet) {
		t.Errorf("helmet hidden: parts = %v, want short hair only", comp.Parts)
	}
	if got := slotAttachmentName(sk, "hair"); got != "Hair_Short_1" {
		t.Errorf("hair slot = %q, want Hair_Short_1", got)
	}
	if c.CurrentIndex(PartHelmet) != 0 {
		t.Errorf("hiding changed helmet index to %d", c.CurrentIndex(PartHelmet))
	}

	c.SetHidden(PartHelmet, false)
	c.SetVariant(PartHelmet, -1)
	if !c.Composite().Contributes(PartHairShort) {
		t.Error("unequipped helmet should show short hair")
	}
}

func TestCharacter_HatHairMirrorsShortHair(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})

	c.SetVariant(PartHairShort, 2)
	if got := c.CurrentIndex(PartHairHat); got != 2 {
		t.Errorf("hair hat index = %d, want 2", got)
	}
	if got := slotAttachmentName(sk, "helmet_hair"); got != "Hair_Hat_3" {
		t.Errorf("helmet_hair slot = %q, want Hair_Hat_3", got)
	}

	// Equipping a helmet resets hat hair, then the mirror restores it.
	c.SetVariant(PartHelmet, 1)
	if got := c.CurrentIndex(PartHairHat); got != 2 {
		t.Errorf("after helmet change hair hat index = %d, want 2", got)
	}
}

// newHelmetCharacter builds a character over three skins, one attachment
// each: Helmet_A (helmet_a), Hair_Short_A (hair_a) and Hair_Hat_A
// (hair_hat_a).
func newHelmetCharacter(t *testing.T) *Character {
	t.Helper()
	data := &SkeletonData{}
	for i, name := range []string{"helmet", "hair", "helmet_hair"} {
		data.Slots = append(data.Slots, &SlotData{Index: i, Name: name, Color: ColorWhite})
	}
	for i, n := range [][2]string{{"Helmet_A", "helmet_a"}, {"Hair_Short_A", "hair_a"}, {"Hair_Hat_A", "hair_hat_a"}} {
		skin := NewSkin(n[0])
		skin.SetAttachment(i, n[1], &Attachment{Name: n[1]})
		data.Skins = append(data.Skins, skin)
	}
	c := NewCharacter(NewSkeleton(data), Options{})
	c.Initialize()
	t.Cleanup(c.Dispose)
	return c
}

func TestCharacter_HelmetScenarios(t *testing.T) {
	tests := []struct {
		name   string
		helmet int
		act    func(c *Character)
		before []string
		after  []string
	}{
		{
			name:   "equip helmet",
			helmet: -1,
			act:    func(c *Character) { c.SetVariant(PartHelmet, 0) },
			before: []string{"hair_a"},
			after:  []string{"helmet_a", "hair_hat_a"},
		},
		{
			name:   "unequip helmet",
			helmet: 0,
			act:    func(c *Character) { c.SetVariant(PartHelmet, -1) },
			before: []string{"helmet_a", "hair_hat_a"},
			after:  []string{"hair_a"},
		},
		{
			name:   "hide helmet",
			helmet: 0,
			act:    func(c *Character) { c.SetHidden(PartHelmet, true) },
			before: []string{"helmet_a", "hair_hat_a"},
			after:  []string{"hair_a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newHelmetCharacter(t)
			c.SetVariant(PartHelmet, tt.helmet)
			if got := c.CurrentIndex(PartHairShort); got != 0 {
				t.Fatalf("Hair_Short = %d, want 0", got)
			}
			if got := attachmentNames(c.Composite().Skin); !reflect.DeepEqual(got, tt.before) {
				t.Fatalf("before = %v, want %v", got, tt.before)
			}
			tt.act(c)
			if got := c.CurrentIndex(PartHairHat); got != 0 {
				t.Errorf("Hair_Hat = %d, want 0", got)
			}
			if got := attachmentNames(c.Composite().Skin); !reflect.DeepEqual(got, tt.after) {
				t.Errorf("after = %v, want %v", got, tt.after)
			}
		})
	}
}

func TestCharacter_HatHairIsDerived(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})
	c.SetVariant(PartHairShort, 1)

	var events []Event
	c.AddListener(func(e Event) { events = append(events, e) })

	c.SetVariant(PartHairHat, 2)
	c.Advance(PartHairHat, 1)
	c.Advance(PartHairHat, -1)
	c.ApplySelection(map[PartType]int{PartHairHat: 2})
	if len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
	if got := c.CurrentIndex(PartHairHat); got != 1 {
		t.Errorf("Hair_Hat = %d, want 1", got)
	}

	c.ApplySelection(map[PartType]int{PartHairHat: 2, PartTop: 1})
	if len(events) != 1 || events[0].Part != PartTop {
		t.Errorf("events = %+v, want one Top event", events)
	}

	events = nil
	c.Randomize(rand.New(rand.NewPCG(3, 3)))
	for _, e := range events {
		if e.Part == PartHairHat {
			t.Errorf("randomize emitted %+v", e)
		}
	}
	if len(events) != len(PartTypes())-1 {
		t.Errorf("randomize events = %d, want %d", len(events), len(PartTypes())-1)
	}
	if c.CurrentIndex(PartHairHat) != c.CurrentIndex(PartHairShort) {
		t.Error("hat hair not mirrored after randomize")
	}
}

func TestCharacter_MissingSkinAlwaysLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	data := &SkeletonData{Skins: []*Skin{NewSkin("Top_1")}}
	c := NewCharacter(NewSkeleton(data), Options{Catalog: NewCatalog([]string{"Top_1", "Top_2"})})
	c.Initialize()
	c.SetVariant(PartTop, 1)

	if !strings.Contains(buf.String(), `skin "Top_2" not found`) {
		t.Errorf("expected missing skin warning, got: %q", buf.String())
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestCharacter_RefreshReleasesRepackedAtlas(t *testing.T) {
	defer ClearPackCache()
	c, sk := newDemoCharacter(t, Options{})
	if err := c.OptimizeAtlas(); err != nil {
		t.Fatalf("OptimizeAtlas: %v", err)
	}
	mat := c.Material()
	if mat == nil {
		t.Fatal("no generated material")
	}

	c.SetVariant(PartTop, 2)
	if !mat.Disposed() {
		t.Error("generated material kept after refresh")
	}
	if c.Material() != nil || c.Optimizer().Skin() != nil {
		t.Error("optimizer still holds the repacked atlas")
	}
	if sk.Skin() != c.Composite().Skin {
		t.Error("composite not bound")
	}
	for _, s := range sk.Slots() {
		if s.Attachment != nil && s.Attachment.Material == mat {
			t.Errorf("slot %s still on released material", s.Data.Name)
		}
	}

	// The next repack starts from the fresh composite.
	if err := c.OptimizeAtlas(); err != nil {
		t.Fatalf("second OptimizeAtlas: %v", err)
	}
	if got := c.DrawCalls(); got != 1 {
		t.Errorf("draw calls = %d, want 1", got)
	}
}

func TestCharacter_Advance(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})

	// Helmet is hideable with two variants.
	want := []int{1, -1, 0, 1}
	for i, w := range want {
		c.Advance(PartHelmet, 1)
		if got := c.CurrentIndex(PartHelmet); got != w {
			t.Fatalf("helmet step %d = %d, want %d", i, got, w)
		}
	}
	c.Advance(PartHelmet, -1)
	c.Advance(PartHelmet, -1)
	if got := c.CurrentIndex(PartHelmet); got != -1 {
		t.Errorf("helmet prev = %d, want -1", got)
	}

	// Top wraps with three variants.
	c.Advance(PartTop, -1)
	if got := c.CurrentIndex(PartTop); got != 2 {
		t.Errorf("top prev = %d, want 2", got)
	}
	c.Advance(PartTop, 1)
	if got := c.CurrentIndex(PartTop); got != 0 {
		t.Errorf("top next = %d, want 0", got)
	}
}

func TestCharacter_CustomHidePolicy(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{Hideable: HideableSet{PartTop: true}})

	c.Advance(PartTop, -1)
	if got := c.CurrentIndex(PartTop); got != -1 {
		t.Fatalf("top prev = %d, want -1", got)
	}
	if got := slotAttachmentName(sk, "top"); got != "" {
		t.Errorf("top slot = %q, want empty", got)
	}

	c.Advance(PartHelmet, 1)
	c.Advance(PartHelmet, 1)
	if got := c.CurrentIndex(PartHelmet); got != 0 {
		t.Errorf("helmet wrapped to %d, want 0", got)
	}
}

func TestCharacter_OutOfRangeVariant(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})

	c.SetVariant(PartTop, 9)
	if got := c.CurrentIndex(PartTop); got != 9 {
		t.Errorf("index = %d, want 9 stored as given", got)
	}
	if got := c.CurrentVariantName(PartTop); got != "" {
		t.Errorf("variant name = %q, want empty", got)
	}
	if got := slotAttachmentName(sk, "top"); got != "" {
		t.Errorf("top slot = %q, want empty", got)
	}
}

func TestCharacter_EventsBeforeRecompose(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})

	var events []Event
	stale := 0
	before := c.Composite().Skin
	id := c.AddListener(func(e Event) {
		events = append(events, e)
		if c.Composite().Skin == before {
			stale++
		}
	})

	c.SetVariant(PartHelmet, 1)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if e := events[0]; e.Type != EventPartChanged || e.Part != PartHelmet || e.Index != 1 {
		t.Errorf("event = %+v", e)
	}
	if stale != 1 {
		t.Error("listener ran after recomposition")
	}
	if c.Composite().Skin == before {
		t.Error("composite not rebuilt")
	}

	c.SetHidden(PartBack, true)
	if e := events[1]; e.Type != EventVisibilityChanged || e.Part != PartBack || !e.Hidden {
		t.Errorf("event = %+v", e)
	}

	c.RemoveListener(id)
	c.SetVariant(PartTop, 1)
	if len(events) != 2 {
		t.Errorf("removed listener still called: %d events", len(events))
	}
}

func TestCharacter_ListenerOrder(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})

	var order []int
	c.AddListener(func(Event) { order = append(order, 1) })
	c.AddListener(func(Event) { order = append(order, 2) })
	c.Advance(PartTop, 1)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

type recordingSink struct{ events []Event }

func (s *recordingSink) EmitEvent(e Event) { s.events = append(s.events, e) }

func TestCharacter_EventSink(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})
	sink := &recordingSink{}
	c.SetEventSink(sink)

	c.SetHairColor(Color{R: 1, A: 1})
	if len(sink.events) != 2 {
		t.Fatalf("sink events = %d, want 2", len(sink.events))
	}
	if sink.events[0].Prefix != PrefixHair || sink.events[1].Prefix != PrefixHelmetHair {
		t.Errorf("prefixes = %q, %q", sink.events[0].Prefix, sink.events[1].Prefix)
	}
}

func TestCharacter_NilRig(t *testing.T) {
	c := NewCharacter(nil, Options{})
	c.Initialize()
	c.SetVariant(PartTop, 1)
	c.Advance(PartTop, 1)
	c.SetHidden(PartTop, true)
	c.SetColorOverride("hair", ColorWhite)
	c.Randomize(rand.New(rand.NewPCG(1, 1)))
	c.Update(0.1)

	if c.State() != StateUninitialized {
		t.Errorf("state = %v, want uninitialized", c.State())
	}
	if got := c.CurrentIndex(PartTop); got != -1 {
		t.Errorf("index = %d, want -1", got)
	}
	if c.IsHidden(PartTop) {
		t.Error("hidden set without rig")
	}
	if err := c.OptimizeAtlas(); !errors.Is(err, ErrNoRig) {
		t.Errorf("OptimizeAtlas err = %v, want ErrNoRig", err)
	}
	if c.DrawCalls() != 0 {
		t.Errorf("draw calls = %d, want 0", c.DrawCalls())
	}
	if len(c.Selection()) != 0 {
		t.Errorf("selection = %v, want empty", c.Selection())
	}
}

func TestCharacter_BeforeInitialize(t *testing.T) {
	data, _ := DemoSkeletonData()
	c := NewCharacter(NewSkeleton(data), Options{})

	c.SetVariant(PartTop, 1)
	if got := c.CurrentIndex(PartTop); got != -1 {
		t.Errorf("index = %d, want -1 before Initialize", got)
	}
	if err := c.OptimizeAtlas(); err != nil {
		t.Errorf("OptimizeAtlas before Initialize = %v, want nil", err)
	}
}

func TestCharacter_HairColorCoversBothSlots(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})
	red := Color{R: 1, A: 1}

	c.SetHairColor(red)
	for _, name := range []string{"hair", "helmet_hair"} {
		if got := sk.FindSlot(name).Color; got != red {
			t.Errorf("%s color = %v, want red", name, got)
		}
	}

	// Overrides survive recomposition.
	c.SetVariant(PartHairShort, 1)
	if got := sk.FindSlot("helmet_hair").Color; got != red {
		t.Errorf("after refresh helmet_hair = %v, want red", got)
	}
}

func TestCharacter_BeardAndBrowColors(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})
	brown := Color{R: 0.4, G: 0.2, B: 0.1, A: 1}
	grey := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

	c.SetBeardColor(brown)
	c.SetBrowColor(grey)
	if got := sk.FindSlot("beard").Color; got != brown {
		t.Errorf("beard = %v, want %v", got, brown)
	}
	if got := sk.FindSlot("brow").Color; got != grey {
		t.Errorf("brow = %v, want %v", got, grey)
	}
	if got := sk.FindSlot("hair").Color; got != ColorWhite {
		t.Errorf("hair = %v, want white", got)
	}
}

func TestCharacter_ClearColorOverride(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})

	c.SetColorOverride("top", Color{G: 1, A: 1})
	c.ClearColorOverride("top")
	if got := sk.FindSlot("top").Color; got != ColorWhite {
		t.Errorf("top = %v, want white after clear", got)
	}
	if _, ok := c.ColorOverride("top"); ok {
		t.Error("override still stored")
	}
}

func TestCharacter_ApplyColorOverrides(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})
	var prefixes []string
	c.AddListener(func(e Event) { prefixes = append(prefixes, e.Prefix) })

	c.ApplyColorOverrides(map[string]Color{
		"skin":  {R: 0.9, G: 0.7, B: 0.6, A: 1},
		"boots": {A: 1},
	})
	if len(prefixes) != 2 || prefixes[0] != "boots" || prefixes[1] != "skin" {
		t.Errorf("prefixes = %v, want [boots skin]", prefixes)
	}
	if got := sk.FindSlot("boots").Color; got != (Color{A: 1}) {
		t.Errorf("boots = %v", got)
	}
	if len(c.ColorOverrides()) != 2 {
		t.Errorf("overrides = %v", c.ColorOverrides())
	}
}

func TestCharacter_UpdateReappliesColors(t *testing.T) {
	c, sk := newDemoCharacter(t, Options{})
	red := Color{R: 1, A: 1}

	if !c.PlayAnimation("idle", true) {
		t.Fatal("idle animation not found")
	}
	c.Update(0.5)
	if a := sk.FindSlot("eyes").Color.A; a >= 1 || a <= 0.5 {
		t.Fatalf("eyes alpha = %v, want animated between 0.5 and 1", a)
	}

	c.SetColorOverride("eyes", red)
	c.Update(0.25)
	if got := sk.FindSlot("eyes").Color; got != red {
		t.Errorf("eyes = %v, want override kept during animation", got)
	}

	if c.PlayAnimation("missing", false) {
		t.Error("unknown animation reported as started")
	}
}

func TestCharacter_OptimizeAtlas(t *testing.T) {
	defer ClearPackCache()
	c, sk := newDemoCharacter(t, Options{})
	red := Color{R: 1, A: 1}
	c.SetHairColor(red)

	before := c.DrawCalls()
	if before <= 1 {
		t.Fatalf("draw calls before = %d, want > 1", before)
	}
	if err := c.OptimizeAtlas(); err != nil {
		t.Fatalf("OptimizeAtlas: %v", err)
	}
	if got := c.DrawCalls(); got != 1 {
		t.Errorf("draw calls after = %d, want 1", got)
	}
	mat := c.Material()
	if mat == nil {
		t.Fatal("no generated material")
	}
	for _, s := range sk.Slots() {
		if s.Attachment != nil && s.Attachment.Material != mat {
			t.Errorf("slot %s not on generated material", s.Data.Name)
		}
	}
	if got := sk.FindSlot("helmet_hair").Color; got != red {
		t.Errorf("helmet_hair = %v, want red after repack", got)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if PackCacheLen() != 0 {
		t.Errorf("pack cache len = %d, want 0", PackCacheLen())
	}

	// Repacking again releases the previous page.
	if err := c.OptimizeAtlas(); err != nil {
		t.Fatalf("second OptimizeAtlas: %v", err)
	}
	if !mat.Disposed() {
		t.Error("previous material not released")
	}
	if c.DrawCalls() != 1 {
		t.Errorf("draw calls after second repack = %d, want 1", c.DrawCalls())
	}
}

func TestCharacter_OptimizeOnRefresh(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{Optimize: true})

	if c.DrawCalls() != 1 {
		t.Fatalf("draw calls = %d, want 1", c.DrawCalls())
	}
	first := c.Material()
	c.SetVariant(PartTop, 2)
	if c.DrawCalls() != 1 {
		t.Errorf("draw calls after change = %d, want 1", c.DrawCalls())
	}
	if !first.Disposed() || c.Material() == first {
		t.Error("refresh did not replace the generated material")
	}
}

func TestCharacter_OptimizeFailureKeepsComposite(t *testing.T) {
	packer := &ShelfPacker{Options: PackOptions{MaxSize: 8}}
	c, sk := newDemoCharacter(t, Options{Packer: packer})

	err := c.OptimizeAtlas()
	if !errors.Is(err, ErrAtlasTooLarge) {
		t.Fatalf("err = %v, want ErrAtlasTooLarge", err)
	}
	if sk.Skin() != c.Composite().Skin {
		t.Error("composite not bound after failed repack")
	}
	if c.Material() != nil {
		t.Error("material set after failed repack")
	}
	if got := slotAttachmentName(sk, "top"); got != "Top_1" {
		t.Errorf("top slot = %q, want Top_1", got)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestCharacter_Dispose(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{Optimize: true})
	mat := c.Material()

	c.Dispose()
	if c.State() != StateDisposed {
		t.Errorf("state = %v, want disposed", c.State())
	}
	if !mat.Disposed() {
		t.Error("generated material not released")
	}
	c.SetVariant(PartTop, 2)
	if got := c.CurrentIndex(PartTop); got != 0 {
		t.Errorf("disposed character changed top to %d", got)
	}
	c.Dispose()
}

func TestCharacter_Randomize(t *testing.T) {
	a, _ := newDemoCharacter(t, Options{})
	b, _ := newDemoCharacter(t, Options{})

	a.Randomize(rand.New(rand.NewPCG(7, 7)))
	b.Randomize(rand.New(rand.NewPCG(7, 7)))

	for _, p := range PartTypes() {
		idx := a.CurrentIndex(p)
		n := len(a.VariantNames(p))
		lo := 0
		if DefaultHideable.IsHideable(p) {
			lo = -1
		}
		if p != PartHairHat && (idx < lo || idx >= n) {
			t.Errorf("%v index = %d, want in [%d, %d)", p, idx, lo, n)
		}
		if idx != b.CurrentIndex(p) {
			t.Errorf("%v differs for same seed: %d vs %d", p, idx, b.CurrentIndex(p))
		}
	}
	if a.CurrentIndex(PartHairHat) != a.CurrentIndex(PartHairShort) {
		t.Error("hat hair not mirrored after randomize")
	}
}

func TestCharacter_ApplySelection(t *testing.T) {
	c, _ := newDemoCharacter(t, Options{})
	count := 0
	c.AddListener(func(Event) { count++ })

	c.ApplySelection(map[PartType]int{})
	if count != 0 {
		t.Errorf("empty selection emitted %d events", count)
	}

	c.ApplySelection(map[PartType]int{PartTop: 2, PartBoots: 1})
	if count != 2 {
		t.Errorf("events = %d, want 2", count)
	}
	if c.CurrentIndex(PartTop) != 2 || c.CurrentIndex(PartBoots) != 1 {
		t.Errorf("selection = %v", c.Selection())
	}

	c.ApplyVisibility(map[PartType]bool{PartBack: true})
	if !c.Visibility()[PartBack] {
		t.Error("back not hidden")
	}
}

func TestCharacter_Rescan(t *testing.T) {
	data, _ := DemoSkeletonData()
	sk := NewSkeleton(data)
	c := NewCharacter(sk, Options{})
	c.Initialize()
	defer c.Dispose()

	extra := NewSkin("Top_4")
	data.Skins = append(data.Skins, extra)
	if n := len(c.VariantNames(PartTop)); n != 3 {
		t.Fatalf("top variants = %d before rescan, want 3", n)
	}
	c.Rescan()
	if n := len(c.VariantNames(PartTop)); n != 4 {
		t.Errorf("top variants = %d after rescan, want 4", n)
	}
	if c.CurrentIndex(PartTop) != 0 {
		t.Errorf("rescan reset selection to %d", c.CurrentIndex(PartTop))
	}
}

func TestCharacter_SharedCatalog(t *testing.T) {
	cat := NewCatalog([]string{"Top_1", "Top_2"})
	c, _ := newDemoCharacter(t, Options{Catalog: cat})

	if c.Catalog() != cat {
		t.Error("shared catalog not used")
	}
	if got := c.CurrentIndex(PartHelmet); got != -1 {
		t.Errorf("helmet index = %d, want -1 for empty catalog entry", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateUninitialized, "uninitialized"},
		{StateIdle, "idle"},
		{StateDisposed, "disposed"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

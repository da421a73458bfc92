package outfit

// Rig is the skeleton a Character drives. Skeleton is the implementation
// shipped with this package; adapters for other runtimes implement the same
// methods.
type Rig interface {
	// SkinNames lists every named skin of the rig in definition order.
	SkinNames() []string
	// FindSkin returns the named skin, or nil.
	FindSkin(name string) *Skin
	// Skin returns the bound skin, or nil.
	Skin() *Skin
	// SetSkin binds skin. Slots pick up its attachments on the next
	// SetSlotsToSetupPose.
	SetSkin(skin *Skin)
	// SetSlotsToSetupPose resets every slot color and attachment to the
	// setup pose of the bound skin.
	SetSlotsToSetupPose()
	// Slots returns the slots in draw order.
	Slots() []*Slot
	// AnimationNames lists the animation clips of the rig.
	AnimationNames() []string
	// SetAnimation starts the named clip, reporting whether it exists.
	SetAnimation(name string, loop bool) bool
	// HasAnimation reports whether a clip is playing.
	HasAnimation() bool
	// ApplyAnimation writes the current animation pose into the slots.
	ApplyAnimation()
	// Update advances the animation by dt seconds and applies it.
	Update(dt float32)
}

// SlotData is the setup pose of one slot.
type SlotData struct {
	Index      int
	Name       string
	Color      Color
	Attachment string // attachment name shown in setup pose; "" picks the first
}

// Slot is a named attachment point carrying one attachment and one tint.
type Slot struct {
	Data       *SlotData
	Color      Color
	Attachment *Attachment
}

// SkeletonData is the shared, read-only definition of a rig.
type SkeletonData struct {
	Name       string
	Slots      []*SlotData
	Skins      []*Skin
	Animations []*Animation
	Materials  []*Material
}

// FindSkin returns the named skin, or nil.
func (d *SkeletonData) FindSkin(name string) *Skin {
	for _, s := range d.Skins {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindSlot returns the index of the named slot, or -1.
func (d *SkeletonData) FindSlot(name string) int {
	for i, s := range d.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// FindAnimation returns the named animation, or nil.
func (d *SkeletonData) FindAnimation(name string) *Animation {
	for _, a := range d.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Skeleton is one posed instance of a SkeletonData.
type Skeleton struct {
	Data  *SkeletonData
	slots []*Slot
	skin  *Skin
	state AnimationState
}

var _ Rig = (*Skeleton)(nil)

// NewSkeleton creates a skeleton in setup pose with no skin bound.
func NewSkeleton(data *SkeletonData) *Skeleton {
	sk := &Skeleton{Data: data, slots: make([]*Slot, len(data.Slots))}
	for i, sd := range data.Slots {
		sk.slots[i] = &Slot{Data: sd, Color: sd.Color}
	}
	return sk
}

// SkinNames implements Rig.
func (sk *Skeleton) SkinNames() []string {
	names := make([]string, len(sk.Data.Skins))
	for i, s := range sk.Data.Skins {
		names[i] = s.Name
	}
	return names
}

// FindSkin implements Rig.
func (sk *Skeleton) FindSkin(name string) *Skin {
	return sk.Data.FindSkin(name)
}

// Skin implements Rig.
func (sk *Skeleton) Skin() *Skin {
	return sk.skin
}

// SetSkin implements Rig.
func (sk *Skeleton) SetSkin(skin *Skin) {
	sk.skin = skin
}

// SetSlotsToSetupPose implements Rig.
func (sk *Skeleton) SetSlotsToSetupPose() {
	for i, slot := range sk.slots {
		slot.Color = slot.Data.Color
		slot.Attachment = sk.skin.slotAttachment(i, slot.Data.Attachment)
	}
}

// Slots implements Rig.
func (sk *Skeleton) Slots() []*Slot {
	return sk.slots
}

// FindSlot returns the named slot, or nil.
func (sk *Skeleton) FindSlot(name string) *Slot {
	if i := sk.Data.FindSlot(name); i >= 0 {
		return sk.slots[i]
	}
	return nil
}

// AnimationNames implements Rig.
func (sk *Skeleton) AnimationNames() []string {
	names := make([]string, len(sk.Data.Animations))
	for i, a := range sk.Data.Animations {
		names[i] = a.Name
	}
	return names
}

// SetAnimation implements Rig.
func (sk *Skeleton) SetAnimation(name string, loop bool) bool {
	a := sk.Data.FindAnimation(name)
	if a == nil {
		return false
	}
	sk.state.SetAnimation(a, loop)
	return true
}

// CurrentAnimation returns the name of the playing clip, or "".
func (sk *Skeleton) CurrentAnimation() string {
	if a := sk.state.Current(); a != nil {
		return a.Name
	}
	return ""
}

// HasAnimation implements Rig.
func (sk *Skeleton) HasAnimation() bool {
	return sk.state.Current() != nil
}

// ApplyAnimation implements Rig.
func (sk *Skeleton) ApplyAnimation() {
	sk.state.Apply(sk)
}

// Update implements Rig.
func (sk *Skeleton) Update(dt float32) {
	sk.state.Update(dt)
	sk.state.Apply(sk)
}

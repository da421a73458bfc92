package outfit

import "fmt"

// AtlasOptimizer repacks the images of a bound skin into one generated
// material so the character draws in as few calls as possible. It owns the
// generated material and releases it before creating the next one.
type AtlasOptimizer struct {
	Packer Packer
	// Base supplies the blend mode and name of generated materials. May be nil.
	Base *Material

	material *Material
	skin     *Skin
	source   *Skin
}

// NewAtlasOptimizer creates an optimizer. A nil packer selects a ShelfPacker
// with default options.
func NewAtlasOptimizer(p Packer, base *Material) *AtlasOptimizer {
	if p == nil {
		p = &ShelfPacker{}
	}
	return &AtlasOptimizer{Packer: p, Base: base}
}

// Material returns the generated material, or nil.
func (o *AtlasOptimizer) Material() *Material {
	return o.material
}

// Skin returns the last repacked skin, or nil.
func (o *AtlasOptimizer) Skin() *Skin {
	return o.skin
}

// Release disposes the generated material and forgets the packed skin.
func (o *AtlasOptimizer) Release() {
	if o.material != nil {
		o.material.Dispose()
		o.material = nil
	}
	o.skin = nil
	o.source = nil
}

// Optimize packs source (the rig's bound skin when nil) and binds the
// result, then resets the rig to setup pose and re-applies its animation.
// It is a no-op when the rig has no bound skin.
//
// The previous generated material is released before packing. On failure
// source is bound again so the rig never references released resources, and
// the error is returned. The process-wide pack cache is cleared afterwards
// either way.
func (o *AtlasOptimizer) Optimize(rig Rig, source *Skin) error {
	if rig == nil || rig.Skin() == nil {
		return nil
	}
	if source == nil {
		source = rig.Skin()
	}
	if source == o.skin {
		// Repacking the packed skin would read the material released below.
		source = o.source
	}
	defer ClearPackCache()

	o.Release()
	packed, mat, err := o.Packer.Pack(source, o.Base)
	if err != nil {
		bind(rig, source)
		return fmt.Errorf("outfit: repack skin: %w", err)
	}
	o.material = mat
	o.skin = packed
	o.source = source
	bind(rig, packed)
	return nil
}

// bind makes skin the rig's active skin and resets the pose.
func bind(rig Rig, skin *Skin) {
	rig.SetSkin(skin)
	rig.SetSlotsToSetupPose()
	rig.ApplyAnimation()
}

// Package outfit is a runtime character-customization engine for 2D
// skeletal rigs.
//
// A rig exposes named skins, one per interchangeable part variant
// ("Helmet_2", "Hair_Short_1"). outfit sorts those skins into part types,
// tracks which variant of each part a character wears, merges the selected
// variants into one composite skin and tints slots by name prefix. On
// request the composite is repacked into a single texture page so the whole
// character draws in one call.
//
// # Quick start
//
//	data, _ := outfit.DemoSkeletonData()
//	c := outfit.NewCharacter(outfit.NewSkeleton(data), outfit.Options{})
//	c.Initialize()
//
//	c.SetVariant(outfit.PartHelmet, 1)
//	c.Advance(outfit.PartTop, 1)
//	c.SetHairColor(outfit.Color{R: 0.6, G: 0.3, B: 0.1, A: 1})
//	if err := c.OptimizeAtlas(); err != nil {
//		log.Printf("repack: %v", err)
//	}
//
// Call [Character.Update] once per frame: animations write slot colors, and
// the color overrides are re-applied on top of them.
//
// # Parts
//
// [PartType] enumerates the part categories. A [Catalog] lists the variant
// skins of each category, matched by case-insensitive name prefix. A
// [Selection] holds one index and one hidden flag per category; index -1
// means nothing is equipped. Hideable parts ([HidePolicy]) cycle through -1
// when advanced past either end of their list.
//
// Helmets and short hair are mutually exclusive: while a visible helmet is
// equipped the composite uses the Hair_Hat variant matching the short-hair
// selection instead of Hair_Short.
//
// # Composition
//
// [Compose] is a pure function of the catalog, the selection and a skin
// lookup. [Character.RefreshComposite] binds its result, resets the rig to
// setup pose and re-applies colors. Unknown skin names are skipped and, in
// debug mode, logged.
//
// # Atlas repacking
//
// [AtlasOptimizer] packs every image the bound skin references into one
// [Material] using a [Packer] ([ShelfPacker] by default). On failure the
// unpacked composite stays bound. [DrawCalls] estimates the draw calls of a
// pose; after repacking it is 1.
//
// # Presets
//
// [PresetStore] keeps saved outfits (part indices and colors) by slot
// index, and encodes them as JSON. The storage/sqlite package persists them
// in SQLite.
//
// # Events
//
// [Character.AddListener] registers callbacks for part, visibility and color
// changes. They run after the change is stored and before the composite is
// rebuilt. The ecs sub-module forwards the same events into a Donburi world.
//
// # Debug
//
// Selected variants with no skin in the rig are always logged and skipped.
// [SetDebug] adds warnings for missing atlas regions plus per-refresh timing
// and draw-call stats on stderr.
package outfit

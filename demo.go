package outfit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// demoPart describes one part type of the demo rig.
type demoPart struct {
	part     PartType
	slot     string
	variants int
}

// demoParts lists the demo slots in draw order.
var demoParts = []demoPart{
	{PartBack, "back", 2},
	{PartSkin, "skin", 3},
	{PartBottom, "bottom", 2},
	{PartTop, "top", 3},
	{PartBoots, "boots", 2},
	{PartGloves, "gloves", 2},
	{PartMouth, "mouth", 2},
	{PartEyes, "eyes", 2},
	{PartBrow, "brow", 2},
	{PartBeard, "beard", 2},
	{PartHairShort, "hair", 3},
	{PartHairHat, "helmet_hair", 3},
	{PartHelmet, "helmet", 2},
	{PartEyewear, "eyewear", 1},
	{PartGearLeft, "gear_left", 2},
	{PartGearRight, "gear_right", 2},
}

const (
	demoTile    = 16
	demoPerRow  = 8
	demoPageW   = demoTile * demoPerRow
	demoPageH   = demoTile * 4
	demoPageCnt = 2
)

// DemoSkeletonData builds a small synthetic rig: one slot per part type and
// a few flat-colored variant skins per slot spread over two atlas pages, plus
// "idle" and "pulse" color animations. Skin names follow the catalog
// convention ("Hair_Short_1", "Helmet_2").
func DemoSkeletonData() (*SkeletonData, *Atlas) {
	pages := make([]*Material, demoPageCnt)
	imgs := make([]*image.NRGBA, demoPageCnt)
	for i := range pages {
		imgs[i] = image.NewNRGBA(image.Rect(0, 0, demoPageW, demoPageH))
		pages[i] = NewMaterial(fmt.Sprintf("demo-page-%d", i), imgs[i], BlendNormal)
	}
	atlas := NewAtlas(pages)
	data := &SkeletonData{Name: "demo", Materials: pages}

	next := make([]int, demoPageCnt)
	for si, dp := range demoParts {
		data.Slots = append(data.Slots, &SlotData{Index: si, Name: dp.slot, Color: ColorWhite})
		page := si % demoPageCnt
		for v := 0; v < dp.variants; v++ {
			name := fmt.Sprintf("%s_%d", dp.part, v+1)
			tile := next[page]
			next[page]++
			x := (tile % demoPerRow) * demoTile
			y := (tile / demoPerRow) * demoTile
			draw.Draw(imgs[page], image.Rect(x, y, x+demoTile, y+demoTile),
				image.NewUniform(demoColor(si, v)), image.Point{}, draw.Src)

			r := TextureRegion{
				Page: uint16(page), X: uint16(x), Y: uint16(y),
				Width: demoTile, Height: demoTile, OriginalW: demoTile, OriginalH: demoTile,
			}
			atlas.SetRegion(name, r)
			skin := NewSkin(name)
			skin.SetAttachment(si, dp.slot, &Attachment{Name: name, Region: r, Material: pages[page]})
			data.Skins = append(data.Skins, skin)
		}
	}

	data.Animations = []*Animation{
		{Name: "idle", Duration: 1, Tracks: []ColorTrack{
			{Slot: "eyes", From: ColorWhite, To: Color{1, 1, 1, 0.5}, Ease: EaseByName("linear")},
		}},
		{Name: "pulse", Duration: 0.5, Tracks: []ColorTrack{
			{Slot: "skin", From: ColorWhite, To: Color{1, 0.8, 0.8, 1}, Ease: EaseByName("inOutSine")},
			{Slot: "hair", From: ColorWhite, To: Color{0.9, 0.9, 0.9, 1}, Ease: EaseByName("inOutSine")},
		}},
	}
	return data, atlas
}

func demoColor(slot, variant int) color.NRGBA {
	k := slot*7 + variant*3
	return color.NRGBA{
		R: uint8(55 + (k*37)%200),
		G: uint8(55 + (k*59)%200),
		B: uint8(55 + (k*83)%200),
		A: 255,
	}
}

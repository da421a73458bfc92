package outfit

import (
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ColorTrack animates the color of every slot named Slot from From to To.
type ColorTrack struct {
	Slot     string
	From, To Color
	Ease     ease.TweenFunc
}

// Animation is a named clip of slot color tracks sharing one duration.
type Animation struct {
	Name     string
	Duration float32
	Tracks   []ColorTrack
}

// AnimationState plays at most one animation. Call Update each frame and
// Apply to write the animated values into a skeleton's slots. Applying
// overwrites slot tints, so custom colors must be re-applied afterwards.
//
// The owning Skeleton updates it; there is no global animation manager.
type AnimationState struct {
	current *Animation
	loop    bool
	done    bool
	tweens  [][4]*gween.Tween
	values  [][4]float32
}

// SetAnimation starts a from its beginning. A nil animation clears the track.
func (st *AnimationState) SetAnimation(a *Animation, loop bool) {
	st.current = a
	st.loop = loop
	st.done = false
	st.restart()
}

// Current returns the playing animation, or nil.
func (st *AnimationState) Current() *Animation {
	return st.current
}

// Done reports whether a non-looping animation has reached its end.
func (st *AnimationState) Done() bool {
	return st.done
}

func (st *AnimationState) restart() {
	st.tweens = st.tweens[:0]
	st.values = st.values[:0]
	if st.current == nil {
		return
	}
	for _, tr := range st.current.Tracks {
		fn := tr.Ease
		if fn == nil {
			fn = ease.Linear
		}
		d := st.current.Duration
		st.tweens = append(st.tweens, [4]*gween.Tween{
			gween.New(float32(tr.From.R), float32(tr.To.R), d, fn),
			gween.New(float32(tr.From.G), float32(tr.To.G), d, fn),
			gween.New(float32(tr.From.B), float32(tr.To.B), d, fn),
			gween.New(float32(tr.From.A), float32(tr.To.A), d, fn),
		})
		st.values = append(st.values, [4]float32{
			float32(tr.From.R), float32(tr.From.G), float32(tr.From.B), float32(tr.From.A),
		})
	}
}

// Update advances all tracks by dt seconds. Looping animations restart once
// every track has finished.
func (st *AnimationState) Update(dt float32) {
	if st.current == nil || st.done {
		return
	}
	if st.current.Duration <= 0 {
		for i, tr := range st.current.Tracks {
			st.values[i] = [4]float32{float32(tr.To.R), float32(tr.To.G), float32(tr.To.B), float32(tr.To.A)}
		}
		st.done = !st.loop
		return
	}

	allDone := true
	for i := range st.tweens {
		for c := 0; c < 4; c++ {
			val, finished := st.tweens[i][c].Update(dt)
			st.values[i][c] = val
			if !finished {
				allDone = false
			}
		}
	}
	if !allDone {
		return
	}
	if st.loop {
		st.restart()
		return
	}
	st.done = true
}

// Apply writes the current track values into the matching slots of sk.
func (st *AnimationState) Apply(sk *Skeleton) {
	if st.current == nil || sk == nil {
		return
	}
	for i, tr := range st.current.Tracks {
		v := st.values[i]
		c := Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
		for _, slot := range sk.slots {
			if slot.Data.Name == tr.Slot {
				slot.Color = c
			}
		}
	}
}

var easeByName = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
}

// EaseByName resolves an easing function name such as "linear" or
// "inOutSine". Unknown or empty names resolve to ease.Linear.
func EaseByName(name string) ease.TweenFunc {
	if fn, ok := easeByName[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.Linear
}

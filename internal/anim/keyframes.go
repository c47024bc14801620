package anim

import (
	"math"
	"sort"
	"time"
)

// Pose is an animated 2D transform plus opacity.
type Pose struct {
	DX, DY  float64
	Scale   float64
	Opacity float64
}

func lerpPose(a, b Pose, t float64) Pose {
	return Pose{
		DX:      lerp(a.DX, b.DX, t),
		DY:      lerp(a.DY, b.DY, t),
		Scale:   lerp(a.Scale, b.Scale, t),
		Opacity: lerp(a.Opacity, b.Opacity, t),
	}
}

// Keyframe is a pose at an offset in [0,1].
type Keyframe struct {
	Offset float64
	Pose   Pose
}

// Track interpolates between keyframes, applying Ease to each segment
// separately like a CSS animation-timing-function.
type Track struct {
	Frames []Keyframe
	Ease   Easing
}

func NewTrack(ease Easing, frames ...Keyframe) Track {
	sorted := append([]Keyframe(nil), frames...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	if ease == nil {
		ease = Linear
	}
	return Track{Frames: sorted, Ease: ease}
}

// At samples the track at progress p in [0,1].
func (tr Track) At(p float64) Pose {
	if len(tr.Frames) == 0 {
		return Pose{Scale: 1, Opacity: 1}
	}
	p = clamp01(p)
	first, last := tr.Frames[0], tr.Frames[len(tr.Frames)-1]
	if p <= first.Offset {
		return first.Pose
	}
	if p >= last.Offset {
		return last.Pose
	}
	for i := 1; i < len(tr.Frames); i++ {
		b := tr.Frames[i]
		if p > b.Offset {
			continue
		}
		a := tr.Frames[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Pose
		}
		return lerpPose(a.Pose, b.Pose, tr.Ease((p-a.Offset)/span))
	}
	return last.Pose
}

// Loop samples an infinitely repeating animation with the given duration
// and delay. Before the delay has elapsed the first keyframe is shown.
func (tr Track) Loop(elapsed, duration, delay time.Duration) Pose {
	if duration <= 0 || elapsed < delay {
		return tr.At(0)
	}
	into := elapsed - delay
	p := math.Mod(float64(into), float64(duration)) / float64(duration)
	return tr.At(p)
}

// Once samples a single-run animation. done is true once elapsed reaches
// duration.
func (tr Track) Once(elapsed, duration time.Duration) (pose Pose, done bool) {
	if duration <= 0 || elapsed >= duration {
		return tr.At(1), true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return tr.At(float64(elapsed) / float64(duration)), false
}

// FloatParticle is the looping drift applied to ambient markers.
var FloatParticle = NewTrack(EaseInOut,
	Keyframe{Offset: 0, Pose: Pose{Scale: 1, Opacity: 1}},
	Keyframe{Offset: 0.25, Pose: Pose{DX: 10, DY: -20, Scale: 1.1, Opacity: 1}},
	Keyframe{Offset: 0.5, Pose: Pose{DX: -10, DY: -10, Scale: 0.9, Opacity: 1}},
	Keyframe{Offset: 0.75, Pose: Pose{DX: 5, DY: -30, Scale: 1.05, Opacity: 1}},
	Keyframe{Offset: 1, Pose: Pose{Scale: 1, Opacity: 1}},
)

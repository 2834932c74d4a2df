package unmask

import "math"

// Edge smoothing modulates the graphic's render alpha as a cheap
// approximation of anti-aliased masking: a low alpha against the inverted
// stencil leaves a soft edge. The target alpha range was tuned against the
// stencil comparison, not derived.
const (
	smoothAlphaMax = 0.01
	smoothAlphaMin = 0.002
	// alphaTolerance suppresses per-frame churn from float32 round-trips
	// through the render pipeline.
	alphaTolerance = 1e-6
)

// targetRenderAlpha computes the render alpha for a graphic at the given
// smoothing strength. Unmaskable graphics and zero smoothing yield 1, as
// does a fully transparent graphic (no division by zero).
func targetRenderAlpha(g *Graphic, smoothing float64) float64 {
	if g == nil || !g.Maskable {
		return 1
	}
	s := clamp01(smoothing)
	if s == 0 {
		return 1
	}
	current := g.Color.A * g.InheritedAlpha
	if current <= 0 {
		return 1
	}
	return clamp01(lerp(smoothAlphaMax, smoothAlphaMin, s) / current)
}

// applySmoothing writes this frame's smoothing alpha to the graphic,
// skipping the write when the change is within tolerance.
func (u *Unmask) applySmoothing() {
	target := targetRenderAlpha(u.graphic, u.EdgeSmoothing)
	if math.Abs(target-u.graphic.renderAlpha) > alphaTolerance {
		u.graphic.SetRenderAlpha(target)
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

package unmask

// Sample is one pointer/touch observation fed to a RaycastFilter.
type Sample struct {
	// X and Y are the pointer position, in screen space unless Camera is set.
	X, Y float64
	// Up is asserted on the frame the touch or mouse button is released.
	Up bool
	// Camera, when non-nil, projects the sample into world space before
	// hit testing. Nil means the position is already in the targets' space.
	Camera *Camera
}

// RaycastFilter lets pointer events pass through unmasked regions: a sample
// inside any target's graphic is marked invalid so it misses normal UI
// hit-testing, and an at-most-once-per-session callback fires on touch up.
// Targets are referenced, never owned.
type RaycastFilter struct {
	targets []*Unmask
	enabled bool
	onTouch func(*Unmask)

	// Session state: touched arms after a callback fires and disarms when
	// the pointer leaves all targets. Moving to a different target
	// mid-session re-arms the callback.
	touched    bool
	lastTarget *Unmask
}

// NewRaycastFilter creates an enabled filter over the given targets.
func NewRaycastFilter(targets ...*Unmask) *RaycastFilter {
	return &RaycastFilter{
		targets: targets,
		enabled: true,
	}
}

// AddTarget appends a target region to the filter. Evaluation order is
// declaration order, first match wins.
func (f *RaycastFilter) AddTarget(target *Unmask) {
	f.targets = append(f.targets, target)
}

// RemoveTarget detaches a target from the filter. No-op if absent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (f *RaycastFilter) RemoveTarget(target *Unmask) {
	for i, t := range f.targets {
		if t == target {
			copy(f.targets[i:], f.targets[i+1:])
			f.targets[len(f.targets)-1] = nil
			f.targets = f.targets[:len(f.targets)-1]
			return
		}
	}
}

// Targets returns the target list. The returned slice MUST NOT be mutated
// by the caller.
func (f *RaycastFilter) Targets() []*Unmask {
	return f.targets
}

// Enabled reports whether the filter participates in hit-test queries.
func (f *RaycastFilter) Enabled() bool {
	return f.enabled
}

// SetEnabled enables or disables the filter. A disabled filter accepts every
// raycast and clears its registered callback on the next Evaluate.
func (f *RaycastFilter) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// SetOnTouch registers the touch callback. Single slot: each assignment
// overwrites the previous callback.
func (f *RaycastFilter) SetOnTouch(fn func(*Unmask)) {
	f.onTouch = fn
}

// Evaluate runs the filter against one pointer sample and returns raycast
// validity: true lets the event proceed to normal UI hit-testing, false
// means the event fell through the unmasked hole.
func (f *RaycastFilter) Evaluate(sample Sample) bool {
	if !f.enabled {
		f.reset()
		f.onTouch = nil
		return true
	}
	if len(f.targets) == 0 {
		f.reset()
		return true
	}

	x, y := sample.X, sample.Y
	if sample.Camera != nil {
		x, y = sample.Camera.ScreenToWorld(x, y)
	}

	for _, target := range f.targets {
		if target == nil || !target.enabled {
			continue
		}
		if !target.graphic.Rect.Contains(x, y) {
			continue
		}
		if sample.Up && (!f.touched || f.lastTarget != target) {
			if f.onTouch != nil {
				f.onTouch(target)
			}
			f.touched = true
			f.lastTarget = target
		}
		return false
	}

	f.reset()
	return true
}

// reset returns the session state machine to Idle.
func (f *RaycastFilter) reset() {
	f.touched = false
	f.lastTarget = nil
}

// Package unmask implements a reverse-mask utility for retained-mode UIs:
// a component that punches a hole through an ancestor mask region using
// stencil-buffer state, plus a raycast filter that lets pointer events pass
// through the unmasked region and fires a callback on touch.
//
// # Unmask component
//
// An [Unmask] operates on an injected [Graphic] and derives stencil material
// state from the ancestor mask's stencil depth:
//
//	pool := unmask.NewStencilPool()
//	hole := unmask.New(unmask.NewGraphic(unmask.Rect{X: 20, Y: 20, Width: 100, Height: 100}), pool)
//	hole.Activate()
//
//	mat := hole.ModifyMaterial(unmask.Material{}, stencilDepth)
//	// submit mat.Stencil with the graphic; apply mat.Pop after the subtree.
//
// On an Ebitengine render target the same hole can be cut directly with
// [Unmask.Punch], which composites the graphic's rectangle using
// destination-out blending.
//
// # Raycast filter
//
// A [RaycastFilter] marks pointer samples inside any target's graphic as
// invalid so they fall through to whatever is behind the mask, and fires an
// at-most-once-per-touch-session callback:
//
//	filter := unmask.NewRaycastFilter(hole)
//	filter.SetOnTouch(func(u *unmask.Unmask) { fmt.Println("touched") })
//	for _, sample := range source.Poll() {
//		valid := filter.Evaluate(sample)
//		// valid == false: the event fell through the hole.
//		_ = valid
//	}
//
// [PointerSource] produces samples from live Ebitengine mouse/touch input,
// or from injected synthetic events for automated tests.
//
// Everything in this package is single-threaded and frame-driven: evaluation
// happens synchronously on the host's simulation thread, once per hit-test
// query or material-resolution pass.
package unmask

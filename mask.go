package unmask

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Material describes how a graphic is submitted to the renderer: a blend
// mode, an optional stencil operation for the draw itself, and an optional
// pop operation applied after the owning node's subtree has rendered.
type Material struct {
	Blend   BlendMode
	Stencil *StencilOp
	Pop     *StencilOp
}

// Unmask punches a reverse-masked hole through an ancestor mask region.
// Given the ancestor stencil depth it derives the stencil state that draws
// everywhere except where the ancestor masked, inverted.
type Unmask struct {
	// ShowGraphic renders the unmask graphic itself in addition to cutting
	// the hole. When false the graphic only writes stencil bits.
	ShowGraphic bool

	// OnlyForChildren restricts the unmask effect to this component's
	// children by tagging the child stencil bit and popping it afterwards,
	// so subsequent siblings render unaffected.
	OnlyForChildren bool

	// EdgeSmoothing in [0, 1] softens the hole's edge by modulating the
	// graphic's render alpha. 0 disables smoothing.
	EdgeSmoothing float64

	graphic *Graphic
	pool    *StencilPool
	enabled bool
	primary *StencilHandle
	pop     *StencilHandle

	smoothTween *gween.Tween

	imgOp ebiten.DrawImageOptions
}

// New creates an Unmask component operating on the given graphic. The pool
// is the shared stencil-material pool; pass nil to use a private pool.
// Panics if graphic is nil. The component starts deactivated.
func New(graphic *Graphic, pool *StencilPool) *Unmask {
	if graphic == nil {
		panic("unmask: nil graphic")
	}
	if pool == nil {
		pool = NewStencilPool()
	}
	return &Unmask{
		ShowGraphic: true,
		graphic:     graphic,
		pool:        pool,
	}
}

// Graphic returns the graphic this component operates on.
func (u *Unmask) Graphic() *Graphic {
	return u.graphic
}

// Enabled reports whether the component is active.
func (u *Unmask) Enabled() bool {
	return u.enabled
}

// Activate enables the component. Called by the embedding application when
// the owning UI element becomes active.
func (u *Unmask) Activate() {
	u.enabled = true
}

// Deactivate disables the component, releases any held stencil variants back
// to the shared pool, and restores the graphic's render alpha.
func (u *Unmask) Deactivate() {
	u.enabled = false
	u.releaseHandles()
	u.smoothTween = nil
	if u.graphic != nil {
		u.graphic.SetRenderAlpha(1)
	}
}

// releaseHandles returns previously acquired stencil variants to the pool.
// Must run before acquiring replacements so stencil-bit allocations in the
// shared pool are never leaked.
func (u *Unmask) releaseHandles() {
	if u.primary != nil {
		u.primary.Release()
		u.primary = nil
	}
	if u.pop != nil {
		u.pop.Release()
		u.pop = nil
	}
}

// ModifyMaterial derives the stencil-configured material for the graphic at
// the given ancestor stencil depth. A deactivated component returns the base
// material unchanged.
//
// The primary op compares equal against the mask bits below the ancestor's
// bit and inverts them, cutting the hole. With OnlyForChildren set, a pop op
// on the child stencil bit undoes the extra bit after this component's
// subtree renders.
func (u *Unmask) ModifyMaterial(base Material, stencilDepth int) Material {
	if !u.enabled {
		return base
	}

	bits := DesiredBit(stencilDepth) - 1
	colorMask := ColorMaskNone
	if u.ShowGraphic {
		colorMask = ColorMaskAll
	}
	primary := StencilOp{
		Ref:       bits,
		ReadMask:  bits,
		WriteMask: bits,
		Compare:   CompareEqual,
		Pass:      ActionInvert,
		ColorMask: colorMask,
	}

	u.releaseHandles()
	u.primary = u.pool.Acquire(primary)

	out := base
	primaryOp := u.primary.Op()
	out.Stencil = &primaryOp
	out.Pop = nil

	if u.OnlyForChildren {
		u.pop = u.pool.Acquire(StencilOp{
			Ref:       childStencilBit,
			ReadMask:  childStencilBit,
			WriteMask: childStencilBit,
			Compare:   CompareEqual,
			Pass:      ActionInvert,
			ColorMask: ColorMaskNone,
		})
		popOp := u.pop.Op()
		out.Pop = &popOp
	}

	return out
}

// SmoothEdgeTo animates EdgeSmoothing to the given target over duration
// seconds. The tween is advanced by Update.
func (u *Unmask) SmoothEdgeTo(target float64, duration float32, easeFn ease.TweenFunc) {
	u.smoothTween = gween.New(float32(u.EdgeSmoothing), float32(clamp01(target)), duration, easeFn)
}

// Update advances the edge-smoothing tween and applies the smoothing alpha
// for this frame. Call once per frame while the component is active.
func (u *Unmask) Update(dt float32) {
	if !u.enabled {
		return
	}
	if u.smoothTween != nil {
		val, done := u.smoothTween.Update(dt)
		u.EdgeSmoothing = float64(val)
		if done {
			u.smoothTween = nil
		}
	}
	u.applySmoothing()
}

// Punch composites the graphic's rectangle onto dst with destination-out
// blending, cutting a transparent hole where an ancestor mask rendered.
// No-op when the component is deactivated or the graphic is unmaskable.
func (u *Unmask) Punch(dst *ebiten.Image) {
	if !u.enabled || !u.graphic.Maskable {
		return
	}
	r := u.graphic.Rect
	if r.Width <= 0 || r.Height <= 0 {
		warnf("Punch on graphic with empty rect %+v", r)
		return
	}
	op := &u.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.Blend = BlendErase.EbitenBlend()
	a := float32(clamp01(u.graphic.renderAlpha * u.graphic.Color.A * u.graphic.InheritedAlpha))
	op.ColorScale.Scale(a, a, a, a)
	dst.DrawImage(WhitePixel, op)
}

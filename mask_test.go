package unmask

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestUnmask() (*Unmask, *StencilPool) {
	pool := NewStencilPool()
	u := New(NewGraphic(Rect{X: 0, Y: 0, Width: 100, Height: 100}), pool)
	u.Activate()
	return u, pool
}

// --- Construction & lifecycle ---

func TestNewPanicsOnNilGraphic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil, ...) should panic")
		}
	}()
	New(nil, NewStencilPool())
}

func TestNewNilPoolUsesPrivatePool(t *testing.T) {
	u := New(NewGraphic(Rect{Width: 10, Height: 10}), nil)
	u.Activate()
	mat := u.ModifyMaterial(Material{}, 1)
	if mat.Stencil == nil {
		t.Error("private pool should still produce stencil state")
	}
}

func TestUnmaskStartsDeactivated(t *testing.T) {
	u := New(NewGraphic(Rect{Width: 10, Height: 10}), nil)
	if u.Enabled() {
		t.Error("component should start deactivated")
	}
}

// --- ModifyMaterial ---

func TestModifyMaterialIdentityWhenDeactivated(t *testing.T) {
	pool := NewStencilPool()
	u := New(NewGraphic(Rect{Width: 10, Height: 10}), pool)

	base := Material{Blend: BlendNormal}
	got := u.ModifyMaterial(base, 2)
	if got != base {
		t.Error("deactivated component should return the base material unchanged")
	}
	if pool.Len() != 0 {
		t.Error("deactivated component should not touch the pool")
	}
}

func TestModifyMaterialPrimaryOp(t *testing.T) {
	u, _ := newTestUnmask()
	mat := u.ModifyMaterial(Material{}, 2)

	if mat.Stencil == nil {
		t.Fatal("primary stencil op should be set")
	}
	op := *mat.Stencil
	if op.Ref != 3 || op.ReadMask != 3 || op.WriteMask != 3 {
		t.Errorf("depth 2 bits = ref %d read %d write %d, want 3/3/3", op.Ref, op.ReadMask, op.WriteMask)
	}
	if op.Compare != CompareEqual {
		t.Error("primary op should compare equal")
	}
	if op.Pass != ActionInvert {
		t.Error("primary op should invert")
	}
	if op.ColorMask != ColorMaskAll {
		t.Error("ShowGraphic should write all color channels")
	}
	if mat.Pop != nil {
		t.Error("Pop should be nil without OnlyForChildren")
	}
}

func TestModifyMaterialHideGraphic(t *testing.T) {
	u, _ := newTestUnmask()
	u.ShowGraphic = false
	mat := u.ModifyMaterial(Material{}, 1)
	if mat.Stencil.ColorMask != ColorMaskNone {
		t.Error("hidden graphic should write no color channels")
	}
}

func TestModifyMaterialOnlyForChildren(t *testing.T) {
	u, pool := newTestUnmask()
	u.OnlyForChildren = true
	mat := u.ModifyMaterial(Material{}, 1)

	if mat.Pop == nil {
		t.Fatal("OnlyForChildren should produce a pop op")
	}
	op := *mat.Pop
	if op.Ref != 1<<7 {
		t.Errorf("pop ref = %d, want %d", op.Ref, 1<<7)
	}
	if op.Compare != CompareEqual || op.Pass != ActionInvert {
		t.Error("pop op should compare equal and invert")
	}
	if op.ColorMask != ColorMaskNone {
		t.Error("pop op should write no color channels")
	}
	if pool.Len() != 2 {
		t.Errorf("pool Len = %d, want 2 (primary + pop)", pool.Len())
	}
}

func TestModifyMaterialPreservesBase(t *testing.T) {
	u, _ := newTestUnmask()
	base := Material{Blend: BlendErase}
	got := u.ModifyMaterial(base, 1)
	if got.Blend != BlendErase {
		t.Error("blend mode from the base material should be preserved")
	}
}

func TestModifyMaterialIdempotent(t *testing.T) {
	u, pool := newTestUnmask()
	a := u.ModifyMaterial(Material{}, 3)
	b := u.ModifyMaterial(Material{}, 3)
	if *a.Stencil != *b.Stencil {
		t.Error("identical inputs should derive equal stencil ops")
	}
	if pool.Len() != 1 {
		t.Errorf("pool Len = %d, want 1 (re-derivation must not leak)", pool.Len())
	}
}

func TestModifyMaterialSupersedesHandles(t *testing.T) {
	u, pool := newTestUnmask()
	u.OnlyForChildren = true
	u.ModifyMaterial(Material{}, 1)
	if pool.Len() != 2 {
		t.Fatalf("pool Len = %d, want 2", pool.Len())
	}

	// Re-deriving at a new depth replaces the old variants.
	u.OnlyForChildren = false
	u.ModifyMaterial(Material{}, 4)
	if pool.Len() != 1 {
		t.Errorf("pool Len = %d after re-derivation, want 1", pool.Len())
	}
}

// --- Deactivate ---

func TestDeactivateReleasesPool(t *testing.T) {
	u, pool := newTestUnmask()
	u.OnlyForChildren = true
	u.ModifyMaterial(Material{}, 2)

	u.Deactivate()
	if pool.Len() != 0 {
		t.Errorf("pool Len = %d after Deactivate, want 0", pool.Len())
	}
	if u.Enabled() {
		t.Error("component should be disabled after Deactivate")
	}
}

func TestDeactivateRestoresRenderAlpha(t *testing.T) {
	u, _ := newTestUnmask()
	u.EdgeSmoothing = 1
	u.Update(0)
	if u.Graphic().RenderAlpha() == 1 {
		t.Fatal("smoothing should have lowered the render alpha")
	}

	u.Deactivate()
	if u.Graphic().RenderAlpha() != 1 {
		t.Error("Deactivate should restore render alpha to 1")
	}
}

// --- SmoothEdgeTo ---

func TestSmoothEdgeToAnimates(t *testing.T) {
	u, _ := newTestUnmask()
	u.SmoothEdgeTo(1, 1.0, ease.Linear)

	u.Update(0.5)
	assertNear(t, "EdgeSmoothing midway", u.EdgeSmoothing, 0.5)

	u.Update(0.5)
	assertNear(t, "EdgeSmoothing done", u.EdgeSmoothing, 1)
	if u.smoothTween != nil {
		t.Error("tween should be cleared when done")
	}
}

func TestSmoothEdgeToClampsTarget(t *testing.T) {
	u, _ := newTestUnmask()
	u.SmoothEdgeTo(5, 0.1, ease.Linear)
	u.Update(1)
	if u.EdgeSmoothing > 1 {
		t.Errorf("EdgeSmoothing = %v, want clamped to 1", u.EdgeSmoothing)
	}
}

func TestUpdateNoOpWhenDeactivated(t *testing.T) {
	u, _ := newTestUnmask()
	u.Deactivate()
	u.EdgeSmoothing = 1
	u.Update(0.016)
	if u.Graphic().RenderAlpha() != 1 {
		t.Error("deactivated Update should not touch the render alpha")
	}
}

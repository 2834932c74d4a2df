package unmask

// Graphic is the UI graphic an Unmask component operates on. It is a plain
// data holder populated by the embedding application: the host engine owns
// layout and rendering, and keeps Rect and InheritedAlpha current each frame.
type Graphic struct {
	// Rect is the graphic's bounds in screen space (or world space when the
	// raycast filter projects samples through a camera).
	Rect Rect

	// Color is the graphic's tint. Only the alpha component participates in
	// edge smoothing.
	Color Color

	// InheritedAlpha is the product of ancestor alphas, computed by the host
	// during tree traversal.
	InheritedAlpha float64

	// Maskable reports whether the graphic participates in stencil masking.
	// Unmaskable graphics keep a render alpha of 1.
	Maskable bool

	renderAlpha float64
}

// NewGraphic creates a Graphic with the given bounds and default values.
func NewGraphic(rect Rect) *Graphic {
	g := &Graphic{Rect: rect}
	graphicDefaults(g)
	return g
}

// graphicDefaults sets the common default field values.
func graphicDefaults(g *Graphic) {
	g.Color = ColorWhite
	g.InheritedAlpha = 1
	g.Maskable = true
	g.renderAlpha = 1
}

// RenderAlpha returns the alpha the graphic is currently rendered with.
func (g *Graphic) RenderAlpha() float64 {
	return g.renderAlpha
}

// SetRenderAlpha sets the alpha the graphic is rendered with. Edge smoothing
// calls this once per frame; the host reads it at render submission time.
func (g *Graphic) SetRenderAlpha(a float64) {
	g.renderAlpha = a
}

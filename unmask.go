package unmask

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// WhitePixel is a 1x1 white image used to composite solid rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// CompareFunc selects the stencil comparison performed against the buffer
// before a fragment is written.
type CompareFunc uint8

const (
	CompareAlways   CompareFunc = iota // pass unconditionally (stencil test disabled)
	CompareEqual                       // pass when (ref & readMask) == (buffer & readMask)
	CompareNotEqual                    // pass when the masked values differ
)

// StencilAction selects the operation applied to the stencil buffer when the
// comparison passes.
type StencilAction uint8

const (
	ActionKeep    StencilAction = iota // leave the buffer value unchanged
	ActionInvert                       // bitwise-invert the masked buffer bits
	ActionReplace                      // write the reference value
	ActionZero                         // clear the masked buffer bits
)

// ColorMask is a bitmask of color channels a draw is allowed to write.
// Values can be combined with bitwise OR.
type ColorMask uint8

const (
	ColorMaskR ColorMask = 1 << iota // red channel
	ColorMaskG                       // green channel
	ColorMaskB                       // blue channel
	ColorMaskA                       // alpha channel
)

const (
	// ColorMaskNone writes no color channels: the draw only touches the
	// stencil buffer.
	ColorMaskNone ColorMask = 0
	// ColorMaskAll writes every color channel.
	ColorMaskAll = ColorMaskR | ColorMaskG | ColorMaskB | ColorMaskA
)

// BlendMode selects a compositing operation. Each maps to a specific
// ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendErase                   // destination-out (punch transparent holes)
	BlendMask                    // clip destination to source alpha
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// toRGBA converts an unmask Color to a color.RGBA (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

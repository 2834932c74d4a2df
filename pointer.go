package unmask

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// syntheticSample represents a single injected pointer event. Screen
// coordinates are used, identical to real mouse input; the camera on the
// emitted Sample handles projection.
type syntheticSample struct {
	x, y    float64
	pressed bool
}

// PointerSource polls Ebitengine input and produces one Sample per live
// pointer each frame, with touch-up edges detected against the previous
// frame's state. Feed the samples to RaycastFilter.Evaluate.
type PointerSource struct {
	camera *Camera

	prevDown     [maxPointers]bool
	lastX, lastY [maxPointers]float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticSample
	samples     []Sample
}

// NewPointerSource creates a pointer source. The camera (may be nil) is
// attached to every emitted Sample.
func NewPointerSource(camera *Camera) *PointerSource {
	return &PointerSource{camera: camera}
}

// InjectPress queues a pointer press at the given screen coordinates.
// The event is consumed on the next Poll call, before live input.
func (p *PointerSource) InjectPress(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticSample{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move at the given screen coordinates with the
// button held down. Use between InjectPress and InjectRelease to simulate
// a drag.
func (p *PointerSource) InjectMove(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticSample{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (p *PointerSource) InjectRelease(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticSample{x: x, y: y, pressed: false})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same screen coordinates. Consumes two Poll calls.
func (p *PointerSource) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// Poll returns this frame's pointer samples. The returned slice is reused
// across calls and MUST NOT be retained. While the inject queue is non-empty
// one synthetic event is consumed per call and live input is skipped.
func (p *PointerSource) Poll() []Sample {
	p.samples = p.samples[:0]
	if p.consumeInjected() {
		return p.samples
	}
	p.pollMouse()
	p.pollTouches()
	return p.samples
}

// consumeInjected pops one event from the inject queue and emits it through
// the same edge detection as real input. Returns true if an event was
// consumed.
func (p *PointerSource) consumeInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	p.emit(0, evt.x, evt.y, evt.pressed)
	return true
}

// pollMouse emits the mouse sample (pointer 0) from the primary button.
func (p *PointerSource) pollMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.emit(0, float64(mx), float64(my), pressed)
}

// pollTouches emits samples for active touches (pointers 1-9) and up-edge
// samples for touches released since the previous frame.
func (p *PointerSource) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(p.prevTouchIDs[:0])
	p.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		p.emit(slot, float64(tx), float64(ty), true)
	}

	// Release slots no longer active: emit the up edge at the last known
	// position, since a lifted touch reports no coordinates.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !activeSlots[i] {
			p.emit(i, p.lastX[i], p.lastY[i], false)
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (p *PointerSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// emit appends a Sample for the pointer, asserting Up on the
// pressed-to-released edge.
func (p *PointerSource) emit(pointerID int, x, y float64, pressed bool) {
	p.samples = append(p.samples, Sample{
		X:      x,
		Y:      y,
		Up:     p.prevDown[pointerID] && !pressed,
		Camera: p.camera,
	})
	p.prevDown[pointerID] = pressed
	p.lastX[pointerID] = x
	p.lastY[pointerID] = y
}

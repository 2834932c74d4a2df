package unmask

// childStencilBit is the fixed companion bit used to restrict the unmask
// effect to the component's children. Bit 7 is reserved for this across the
// whole stencil buffer layout, leaving bits 0-6 for mask nesting depth.
const childStencilBit = 1 << 7

// DesiredBit returns the stencil bit corresponding to a mask nesting depth.
func DesiredBit(depth int) int {
	return 1 << depth
}

// StencilOp describes a single stencil-configured draw: the comparison
// performed against the buffer, the action applied on pass, and which color
// channels the draw may write. StencilOp is a comparable value type, so two
// derivations with identical inputs produce equal descriptors.
type StencilOp struct {
	// Ref is the reference value compared against the buffer.
	Ref int
	// ReadMask selects the buffer bits participating in the comparison.
	ReadMask int
	// WriteMask selects the buffer bits the action may modify.
	WriteMask int
	// Compare is the comparison function.
	Compare CompareFunc
	// Pass is the action applied to the buffer when the comparison passes.
	Pass StencilAction
	// ColorMask selects the color channels the draw writes.
	ColorMask ColorMask
}

// --- Stencil pool ---

// StencilPool is the shared pool of stencil-configured material variants,
// keyed by comparison parameters. Entries are refcounted: acquiring an op
// already in the pool reuses its entry, and releasing the last handle frees
// it. Single-threaded, like everything else in this package.
type StencilPool struct {
	entries map[uint64]*poolEntry
}

type poolEntry struct {
	op   StencilOp
	refs int
}

// NewStencilPool creates an empty stencil pool.
func NewStencilPool() *StencilPool {
	return &StencilPool{}
}

// stencilKey packs a StencilOp's fields into a single uint64.
// Ref, ReadMask, and WriteMask fit in 8 bits each for an 8-bit stencil buffer.
func stencilKey(op StencilOp) uint64 {
	return uint64(op.Ref)&0xff |
		(uint64(op.ReadMask)&0xff)<<8 |
		(uint64(op.WriteMask)&0xff)<<16 |
		uint64(op.Compare)<<24 |
		uint64(op.Pass)<<32 |
		uint64(op.ColorMask)<<40
}

// Acquire returns a handle for the pool entry matching op, creating the
// entry if needed. The caller must Release the handle when the op is
// superseded or the owner deactivates.
func (p *StencilPool) Acquire(op StencilOp) *StencilHandle {
	key := stencilKey(op)
	if p.entries == nil {
		p.entries = make(map[uint64]*poolEntry)
	}
	entry := p.entries[key]
	if entry == nil {
		entry = &poolEntry{op: op}
		p.entries[key] = entry
	}
	entry.refs++
	return &StencilHandle{pool: p, key: key, op: op}
}

// Len returns the number of distinct stencil variants currently held.
func (p *StencilPool) Len() int {
	return len(p.entries)
}

// release decrements the refcount for key and frees the entry at zero.
func (p *StencilPool) release(key uint64) {
	entry := p.entries[key]
	if entry == nil {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(p.entries, key)
	}
}

// --- Stencil handle ---

// StencilHandle is a scoped reference to a pooled stencil variant.
// Releasing is idempotent; a released handle's Op is still readable.
type StencilHandle struct {
	pool     *StencilPool
	key      uint64
	op       StencilOp
	released bool
}

// Op returns the stencil operation this handle refers to.
func (h *StencilHandle) Op() StencilOp {
	return h.op
}

// Release returns the handle's pool entry. Safe to call more than once.
func (h *StencilHandle) Release() {
	if h.released || h.pool == nil {
		return
	}
	h.released = true
	h.pool.release(h.key)
}

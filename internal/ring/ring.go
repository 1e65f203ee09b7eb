// Package ring implements the circular producer/consumer buffer the
// serializer layers chunk framing and compressed output over. It never
// allocates: the backing array is handed to New by a caller that carved it
// out of a workspace.
package ring

// Ring is a fixed-capacity circular byte buffer over a backing slice
// supplied at construction. Continues the teacher's internal/buffer.Buffer
// segment-tracking idiom (begin/pos cursors, Preview/Finish/Discard),
// generalized to true wrap-around: both Prepare and Data may return two
// sub-slices when the requested region straddles the physical end of the
// backing array.
type Ring struct {
	buf         []byte
	read, write int
	size        int
}

// New wraps backing as an empty Ring. backing's capacity never changes.
func New(backing []byte) *Ring {
	return &Ring{buf: backing}
}

// Capacity returns the size of the backing array.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// Size returns the number of currently committed (readable) bytes.
func (r *Ring) Size() int {
	return r.size
}

// Free returns the number of bytes that may still be prepared.
func (r *Ring) Free() int {
	return len(r.buf) - r.size
}

// Prepare returns up to two mutable ranges, summing to min(n, Free()),
// that the caller may write new data into. Nothing is committed until
// Commit is called with the number of bytes actually written.
func (r *Ring) Prepare(n int) (a, b []byte) {
	if free := r.Free(); n > free {
		n = free
	}
	if n == 0 || len(r.buf) == 0 {
		return nil, nil
	}

	first := len(r.buf) - r.write
	if first >= n {
		return r.buf[r.write : r.write+n], nil
	}

	return r.buf[r.write:], r.buf[:n-first]
}

// PrepareContiguous is Prepare, keeping only the first (possibly shorter
// than n) contiguous run. Producers that need a single destination
// slice — a Source.Read, a Filter's out range, a Stream.Prepare range —
// go through this instead of Prepare.
func (r *Ring) PrepareContiguous(n int) []byte {
	a, _ := r.Prepare(n)
	return a
}

// Commit marks the next k bytes of the most recently Prepared region as
// readable. The caller must not commit more than it has just prepared.
func (r *Ring) Commit(k int) {
	if len(r.buf) == 0 || k == 0 {
		return
	}

	r.write = (r.write + k) % len(r.buf)
	r.size += k
}

// Data returns up to two const ranges covering every currently committed
// byte, summing to Size().
func (r *Ring) Data() (a, b []byte) {
	if r.size == 0 {
		return nil, nil
	}

	first := len(r.buf) - r.read
	if first >= r.size {
		return r.buf[r.read : r.read+r.size], nil
	}

	return r.buf[r.read:], r.buf[:r.size-first]
}

// Consume advances the read cursor by k bytes, retiring them from Data().
func (r *Ring) Consume(k int) {
	if len(r.buf) == 0 || k == 0 {
		return
	}

	r.read = (r.read + k) % len(r.buf)
	r.size -= k
}

// Uncommit retracts the last k committed bytes, moving the write cursor
// back. Only valid when those bytes have not yet been exposed through
// Data()/Consume() by the caller — it exists so a reserved placeholder
// (a chunk header committed before its length is known) can be withdrawn
// when it turns out nothing followed it.
func (r *Ring) Uncommit(k int) {
	if len(r.buf) == 0 || k == 0 {
		return
	}

	r.write = (r.write - k + len(r.buf)) % len(r.buf)
	r.size -= k
}

// Clear resets the ring to empty without touching the backing array.
func (r *Ring) Clear() {
	r.read, r.write, r.size = 0, 0, 0
}

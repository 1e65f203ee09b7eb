// Package scatter implements the fixed-capacity ordered list of byte
// ranges the serializer exposes to the caller as the current
// ready-to-transmit wire image.
package scatter

// MaxSlots bounds a View to the header slot plus up to four body ranges,
// matching the serializer's worst case: header, a reserved chunk-header
// slot, the framed/raw body, and a trailer.
const MaxSlots = 5

// View is a small fixed-capacity ordered list of const byte ranges. Index
// 0, when present, is always the header range.
type View struct {
	slots [MaxSlots][]byte
	n     int
}

// Reset empties the view.
func (v *View) Reset() {
	for i := 0; i < v.n; i++ {
		v.slots[i] = nil
	}

	v.n = 0
}

// Push appends a range. Empty ranges are dropped silently, so callers can
// push the second half of a possibly-empty ring.Data() pair unconditionally.
func (v *View) Push(b []byte) {
	if len(b) == 0 {
		return
	}

	v.slots[v.n] = b
	v.n++
}

// Len reports how many non-empty slots are currently held.
func (v *View) Len() int {
	return v.n
}

// Slots returns the current ranges in order.
func (v *View) Slots() [][]byte {
	return v.slots[:v.n]
}

// Total sums every slot's length.
func (v *View) Total() int {
	total := 0
	for _, s := range v.slots[:v.n] {
		total += len(s)
	}

	return total
}

// Consume removes n bytes from the front of the view, across as many
// slots as needed — retiring the header slot first when it is index 0.
func (v *View) Consume(n int) {
	i := 0
	for n > 0 && i < v.n {
		if n < len(v.slots[i]) {
			v.slots[i] = v.slots[i][n:]
			n = 0
			break
		}

		n -= len(v.slots[i])
		i++
	}

	copy(v.slots[:v.n-i], v.slots[i:v.n])
	for j := v.n - i; j < v.n; j++ {
		v.slots[j] = nil
	}

	v.n -= i
}

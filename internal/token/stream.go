package token

// Stream is an ordered sequence of token trees.
type Stream []Token

// Len counts tokens recursively, groups included.
func (s Stream) Len() int {
	n := 0
	for _, t := range s {
		n++
		if t.Kind == Group {
			n += Stream(t.Children).Len()
		}
	}
	return n
}

// Clone returns a deep copy of s so callers can keep it independent of
// later appends to the source slices.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	for i, t := range s {
		if t.Kind == Group {
			t.Children = Stream(t.Children).Clone()
		}
		out[i] = t
	}
	return out
}

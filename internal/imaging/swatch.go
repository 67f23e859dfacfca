package imaging

// Swatches is an ordered collection of saved colors.
//
// Colors are kept in append order, which is also the display order.
// Duplicates are allowed. The collection only grows through Append and is
// reset through Clear.
//
// The zero value is an empty collection ready to use. Swatches is owned by a
// single caller and is not safe for concurrent use.
type Swatches struct {
	colors []Color
}

// Append adds c to the end of the collection.
func (s *Swatches) Append(c Color) {
	s.colors = append(s.colors, c)
}

// Clear removes every color.
func (s *Swatches) Clear() {
	s.colors = nil
}

// Len returns the number of saved colors.
func (s *Swatches) Len() int {
	return len(s.colors)
}

// Colors returns a copy of the saved colors in append order.
func (s *Swatches) Colors() []Color {
	out := make([]Color, len(s.colors))
	copy(out, s.colors)
	return out
}

// Nearest returns the saved color perceptually closest to c and its index.
//
// Distance is CIEDE2000 in Lab space. The earliest saved color wins ties.
// ok is false when the collection is empty.
func (s *Swatches) Nearest(c Color) (nearest Color, index int, ok bool) {
	if len(s.colors) == 0 {
		return Color{}, -1, false
	}

	target := c.colorful()
	best := -1.0
	for i, sc := range s.colors {
		d := target.DistanceCIEDE2000(sc.colorful())
		if best < 0 || d < best {
			best, nearest, index = d, sc, i
		}
	}
	return nearest, index, true
}

package topology

// indexed is satisfied by elements that carry their own list position.
type indexed interface {
	comparable
	Index() int
	setIndex(int)
	String() string
}

// IndexedList is an ordered container whose elements know their own index.
// The list is the only writer of those indices: after every mutation each
// element at or after the mutation point is re-stamped so that
// e.Index() equals its position.
type IndexedList[E indexed] struct {
	items []E
}

func (l *IndexedList[E]) Len() int { return len(l.items) }

// At returns the element at position i. It panics if i is out of range, like
// slice indexing.
func (l *IndexedList[E]) At(i int) E { return l.items[i] }

// Items returns a copy of the elements in order.
func (l *IndexedList[E]) Items() []E {
	out := make([]E, len(l.items))
	copy(out, l.items)
	return out
}

// Contains reports whether e occupies the slot its index points at.
func (l *IndexedList[E]) Contains(e E) bool {
	var zero E
	if e == zero {
		return false
	}
	i := e.Index()
	return i >= 0 && i < len(l.items) && l.items[i] == e
}

func (l *IndexedList[E]) Append(e E) {
	l.items = append(l.items, e)
	e.setIndex(len(l.items) - 1)
}

func (l *IndexedList[E]) Extend(es []E) {
	start := len(l.items)
	l.items = append(l.items, es...)
	l.restamp(start)
}

func (l *IndexedList[E]) Insert(at int, e E) error {
	return l.insertMany(at, []E{e})
}

// Pop removes and returns the element at position at. Negative positions
// count from the end, so Pop(-1) removes the last element.
func (l *IndexedList[E]) Pop(at int) (E, error) {
	var zero E
	i, err := l.resolve(at)
	if err != nil {
		return zero, err
	}
	e := l.items[i]
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	l.restamp(i)
	e.setIndex(-1)
	return e, nil
}

// Remove pops e after checking that the slot at e.Index() holds e itself.
func (l *IndexedList[E]) Remove(e E) error {
	if err := l.checkIdentity(e); err != nil {
		return err
	}
	_, err := l.Pop(e.Index())
	return err
}

func (l *IndexedList[E]) checkIdentity(e E) error {
	var zero E
	if e == zero {
		return &IdentityError{Element: "<nil>", Index: -1}
	}
	if !l.Contains(e) {
		return &IdentityError{Element: e.String(), Index: e.Index()}
	}
	return nil
}

// resolve maps a possibly negative position onto [0, Len()).
func (l *IndexedList[E]) resolve(at int) (int, error) {
	n := len(l.items)
	i := at
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, indexRange(at, n)
	}
	return i, nil
}

// insertMany places es before position at (at == Len() appends).
func (l *IndexedList[E]) insertMany(at int, es []E) error {
	n := len(l.items)
	if at < 0 || at > n {
		return indexRange(at, n)
	}
	grown := make([]E, 0, n+len(es))
	grown = append(grown, l.items[:at]...)
	grown = append(grown, es...)
	grown = append(grown, l.items[at:]...)
	l.items = grown
	l.restamp(at)
	return nil
}

// removeWhere drops every element for which drop returns true and returns
// them in their former order. Removed elements get index -1.
func (l *IndexedList[E]) removeWhere(drop func(E) bool) []E {
	var removed []E
	kept := l.items[:0]
	first := -1
	for i, e := range l.items {
		if drop(e) {
			if first < 0 {
				first = i
			}
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	var zero E
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = kept
	if first >= 0 {
		l.restamp(first)
	}
	for _, e := range removed {
		e.setIndex(-1)
	}
	return removed
}

func (l *IndexedList[E]) restamp(from int) {
	for i := from; i < len(l.items); i++ {
		l.items[i].setIndex(i)
	}
}

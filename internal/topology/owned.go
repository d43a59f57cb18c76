package topology

// owned is satisfied by elements a molecule can take ownership of.
type owned interface {
	indexed
	Owner() MoleculeID
	setOwner(MoleculeID)
}

// OwnedList is an IndexedList bound to one molecule. An element may be added
// only if nothing owns it yet; adding commits the owner stamp.
type OwnedList[E owned] struct {
	list  IndexedList[E]
	owner MoleculeID
}

func newOwnedList[E owned](owner MoleculeID) OwnedList[E] {
	return OwnedList[E]{owner: owner}
}

func (l *OwnedList[E]) Owner() MoleculeID { return l.owner }
func (l *OwnedList[E]) Len() int          { return l.list.Len() }
func (l *OwnedList[E]) At(i int) E        { return l.list.At(i) }
func (l *OwnedList[E]) Items() []E        { return l.list.Items() }
func (l *OwnedList[E]) Contains(e E) bool { return l.list.Contains(e) }

// checkOwnership fails if e is nil or already belongs to this molecule or to
// another.
func (l *OwnedList[E]) checkOwnership(e E) error {
	var zero E
	if e == zero {
		return nilElement(l.owner)
	}
	switch o := e.Owner(); {
	case o == l.owner && l.Contains(e):
		return &OwnershipError{Element: e.String(), Owner: o, Target: l.owner,
			Reason: "cannot appear twice in this molecule"}
	case o == l.owner:
		return &OwnershipError{Element: e.String(), Owner: o, Target: l.owner,
			Reason: "claims this molecule but is missing from its list"}
	case o != 0:
		return &OwnershipError{Element: e.String(), Owner: o, Target: l.owner,
			Reason: "is already a member of molecule " + o.String()}
	}
	return nil
}

// checkBatch validates every element of es, including repeats within es,
// before anything is committed.
func (l *OwnedList[E]) checkBatch(es []E) error {
	seen := make(map[E]struct{}, len(es))
	for _, e := range es {
		if err := l.checkOwnership(e); err != nil {
			return err
		}
		if _, dup := seen[e]; dup {
			return &OwnershipError{Element: e.String(), Target: l.owner,
				Reason: "appears more than once in the batch"}
		}
		seen[e] = struct{}{}
	}
	return nil
}

func (l *OwnedList[E]) Add(e E) error {
	if err := l.checkOwnership(e); err != nil {
		return err
	}
	l.list.Append(e)
	e.setOwner(l.owner)
	return nil
}

func (l *OwnedList[E]) AddMany(es []E) error {
	if err := l.checkBatch(es); err != nil {
		return err
	}
	l.list.Extend(es)
	l.stamp(es)
	return nil
}

func (l *OwnedList[E]) Insert(at int, e E) error {
	if err := l.checkOwnership(e); err != nil {
		return err
	}
	return l.insertMany(at, []E{e})
}

// insertMany commits an already validated batch before position at and
// stamps the owner on each element.
func (l *OwnedList[E]) insertMany(at int, es []E) error {
	if err := l.list.insertMany(at, es); err != nil {
		return err
	}
	l.stamp(es)
	return nil
}

// Pop removes the element at position at (negative counts from the end) and
// clears its owner.
func (l *OwnedList[E]) Pop(at int) (E, error) {
	e, err := l.list.Pop(at)
	if err != nil {
		return e, err
	}
	e.setOwner(0)
	return e, nil
}

func (l *OwnedList[E]) Remove(e E) error {
	if err := l.list.Remove(e); err != nil {
		return err
	}
	e.setOwner(0)
	return nil
}

// removeWhere drops every element selected by drop, clears their owners and
// returns them in their former order.
func (l *OwnedList[E]) removeWhere(drop func(E) bool) []E {
	removed := l.list.removeWhere(drop)
	for _, e := range removed {
		e.setOwner(0)
	}
	return removed
}

func (l *OwnedList[E]) stamp(es []E) {
	for _, e := range es {
		e.setOwner(l.owner)
	}
}

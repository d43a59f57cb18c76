package topology

// extras are the containers a batch names explicitly, in batch order. They
// are registered ahead of containers reached only through atoms, and even
// when they hold no atoms.
type extras struct {
	residues []*Residue
	chains   []*Chain
}

// AtomList is the master list of atoms in a molecule and the only way new
// structure enters it. Residue and chain additions funnel through here.
type AtomList struct {
	base OwnedList[*Atom]
	mol  *Molecule
}

func (l *AtomList) Len() int              { return l.base.Len() }
func (l *AtomList) At(i int) *Atom        { return l.base.At(i) }
func (l *AtomList) Items() []*Atom        { return l.base.Items() }
func (l *AtomList) Contains(a *Atom) bool { return l.base.Contains(a) }
func (l *AtomList) Owner() MoleculeID     { return l.base.Owner() }
func (l *AtomList) Add(a *Atom) error     { return l.AddMany([]*Atom{a}) }

// AddMany adds atoms to the end of the molecule. Atoms already in a residue
// bring the residue (and its chain) with them; the batch must then contain
// every atom of those containers that the molecule does not already own.
// Atoms without a residue go into the molecule's default residue.
func (l *AtomList) AddMany(atoms []*Atom) error {
	return l.mol.run(OpAddAtoms, KindAtom, len(atoms), func() error {
		return l.add(l.base.Len(), atoms, extras{})
	})
}

// Insert adds a single atom before position at, with the same rules as
// AddMany.
func (l *AtomList) Insert(at int, a *Atom) error {
	return l.mol.run(OpInsertAtom, KindAtom, 1, func() error {
		return l.add(at, []*Atom{a}, extras{})
	})
}

// Pop removes the atom at position at (negative counts from the end). The
// atom leaves its residue and gets its position and momentum back.
func (l *AtomList) Pop(at int) (*Atom, error) {
	var popped *Atom
	err := l.mol.run(OpPopAtom, KindAtom, 1, func() error {
		i, err := l.base.list.resolve(at)
		if err != nil {
			return err
		}
		popped = l.pop(l.base.At(i))
		return nil
	})
	return popped, err
}

// Remove pops a after checking that it is the atom stored at a.Index().
func (l *AtomList) Remove(a *Atom) error {
	return l.mol.run(OpPopAtom, KindAtom, 1, func() error {
		if err := l.base.list.checkIdentity(a); err != nil {
			return err
		}
		l.pop(a)
		return nil
	})
}

func (l *AtomList) pop(a *Atom) *Atom {
	l.mol.releaseAtoms(map[*Atom]struct{}{a: {}})
	if r := a.residue; r != nil {
		r.unlink(a)
	}
	return a
}

// add is the commit pipeline shared by every path that grows the atom list:
// validate everything, insert and stamp ownership, backfill default
// containers, register new residues and chains, then recompute derived
// arrays.
func (l *AtomList) add(at int, atoms []*Atom, ex extras) error {
	for _, a := range atoms {
		if a == nil {
			return nilElement(l.mol.id)
		}
	}
	if err := l.checkStructure(atoms); err != nil {
		return err
	}
	if err := l.checkOwnership(atoms); err != nil {
		return err
	}
	n := l.base.Len()
	if at < 0 || at > n {
		return indexRange(at, n)
	}

	origin := make([]int, n+len(atoms))
	for j := range origin {
		switch {
		case j < at:
			origin[j] = j
		case j < at+len(atoms):
			origin[j] = -1
		default:
			origin[j] = j - len(atoms)
		}
	}

	if err := l.base.insertMany(at, atoms); err != nil {
		return err
	}
	m := l.mol
	m.backfill(atoms)
	m.register(atoms, ex)
	m.recompute(origin)
	for _, a := range atoms {
		a.clearState()
	}
	return nil
}

// checkStructure rejects a batch that would split a residue or chain: every
// atom of a referenced container must be in the batch or already owned by
// this molecule. Containers owned elsewhere are left to checkOwnership.
func (l *AtomList) checkStructure(atoms []*Atom) error {
	id := l.mol.id
	batch := atomSet(atoms)
	included := func(x *Atom) bool {
		_, ok := batch[x]
		return ok || x.owner == id
	}

	residues := make(map[*Residue]struct{})
	chains := make(map[*Chain]struct{})
	for _, a := range atoms {
		if r := a.residue; r != nil && (r.owner == 0 || r.owner == id) {
			if _, seen := residues[r]; !seen {
				residues[r] = struct{}{}
				for _, x := range r.atoms {
					if !included(x) {
						return &StructureError{Container: r.String(), Missing: x.String()}
					}
				}
			}
		}
		if c := a.Chain(); c != nil && (c.owner == 0 || c.owner == id) {
			if _, seen := chains[c]; !seen {
				chains[c] = struct{}{}
				for _, x := range c.Atoms() {
					if !included(x) {
						return &StructureError{Container: c.String(), Missing: x.String()}
					}
				}
			}
		}
	}
	return nil
}

// checkOwnership rejects atoms whose residue or chain belongs to another
// molecule, then applies the base single-ownership rules to the batch.
func (l *AtomList) checkOwnership(atoms []*Atom) error {
	id := l.mol.id
	for _, a := range atoms {
		if r := a.residue; r != nil && r.owner != 0 && r.owner != id {
			return &OwnershipError{Element: a.String(), Owner: r.owner, Target: id, Container: r.String()}
		}
		if c := a.Chain(); c != nil && c.owner != 0 && c.owner != id {
			return &OwnershipError{Element: a.String(), Owner: c.owner, Target: id, Container: c.String()}
		}
	}
	return l.base.checkBatch(atoms)
}

// detach removes the atoms selected by drop, clearing their owners, and
// reports for each remaining atom the index it held before.
func (l *AtomList) detach(drop func(*Atom) bool) (removed []*Atom, origin []int) {
	origin = make([]int, 0, l.base.Len())
	for i, a := range l.base.list.items {
		if !drop(a) {
			origin = append(origin, i)
		}
	}
	removed = l.base.removeWhere(drop)
	return removed, origin
}

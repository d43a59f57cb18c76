package topology

// ResidueList is the master list of residues in a molecule. Adding residues
// adds their atoms; the residues are registered in batch order once the atom
// batch commits.
type ResidueList struct {
	base OwnedList[*Residue]
	mol  *Molecule
}

func (l *ResidueList) Len() int                 { return l.base.Len() }
func (l *ResidueList) At(i int) *Residue        { return l.base.At(i) }
func (l *ResidueList) Items() []*Residue        { return l.base.Items() }
func (l *ResidueList) Contains(r *Residue) bool { return l.base.Contains(r) }
func (l *ResidueList) Owner() MoleculeID        { return l.base.Owner() }
func (l *ResidueList) Add(r *Residue) error     { return l.AddMany([]*Residue{r}) }

// AddMany adds every atom of every residue in one atom batch. A residue
// whose chain is not part of any molecule must arrive together with all of
// that chain's residues.
func (l *ResidueList) AddMany(residues []*Residue) error {
	return l.mol.run(OpAddResidues, KindResidue, len(residues), func() error {
		if err := l.check(residues); err != nil {
			return err
		}
		var atoms []*Atom
		for _, r := range residues {
			atoms = append(atoms, r.atoms...)
		}
		return l.mol.atoms.add(l.mol.atoms.Len(), atoms, extras{residues: residues})
	})
}

// Pop removes the residue at position at (negative counts from the end)
// together with all of its atoms. The atoms stay linked to the residue; the
// residue leaves its chain.
func (l *ResidueList) Pop(at int) (*Residue, error) {
	var popped *Residue
	err := l.mol.run(OpPopResidue, KindResidue, 1, func() error {
		r, err := l.base.Pop(at)
		if err != nil {
			return err
		}
		popped = l.release(r)
		return nil
	})
	return popped, err
}

func (l *ResidueList) Remove(r *Residue) error {
	return l.mol.run(OpPopResidue, KindResidue, 1, func() error {
		if err := l.base.Remove(r); err != nil {
			return err
		}
		l.release(r)
		return nil
	})
}

// release finishes a residue that has just left the list: its atoms leave
// with it and it leaves its chain.
func (l *ResidueList) release(r *Residue) *Residue {
	m := l.mol
	m.releaseAtoms(atomSet(r.atoms))
	if c := r.chain; c != nil {
		c.unlink(r)
	}
	if m.defResidue == r {
		m.defResidue = nil
	}
	return r
}

func (l *ResidueList) check(residues []*Residue) error {
	id := l.mol.id
	for _, r := range residues {
		if r == nil {
			return nilElement(id)
		}
		if c := r.chain; c != nil && c.owner != 0 && c.owner != id {
			return &OwnershipError{Element: r.String(), Owner: c.owner, Target: id, Container: c.String()}
		}
	}
	if err := l.base.checkBatch(residues); err != nil {
		return err
	}

	batch := make(map[*Residue]struct{}, len(residues))
	for _, r := range residues {
		batch[r] = struct{}{}
	}
	for _, r := range residues {
		c := r.chain
		if c == nil || c.owner != 0 {
			continue
		}
		for _, s := range c.residues {
			if _, ok := batch[s]; !ok {
				return &StructureError{Container: c.String(), Missing: s.String()}
			}
		}
	}
	return nil
}

package topology

// ChainList is the master list of chains in a molecule. It carries no
// derived state of its own.
type ChainList struct {
	base OwnedList[*Chain]
	mol  *Molecule
}

func (l *ChainList) Len() int               { return l.base.Len() }
func (l *ChainList) At(i int) *Chain        { return l.base.At(i) }
func (l *ChainList) Items() []*Chain        { return l.base.Items() }
func (l *ChainList) Contains(c *Chain) bool { return l.base.Contains(c) }
func (l *ChainList) Owner() MoleculeID      { return l.base.Owner() }
func (l *ChainList) Add(c *Chain) error     { return l.AddMany([]*Chain{c}) }

// AddMany registers chains together with their residues and atoms. The atoms
// go through the atom list like any other batch; chains and residues are then
// registered in batch order, empty ones included.
func (l *ChainList) AddMany(chains []*Chain) error {
	return l.mol.run(OpAddChains, KindChain, len(chains), func() error {
		if err := l.base.checkBatch(chains); err != nil {
			return err
		}
		var atoms []*Atom
		var residues []*Residue
		for _, c := range chains {
			for _, r := range c.residues {
				if r.owner != 0 {
					return &OwnershipError{Element: r.String(), Owner: r.owner, Target: l.base.Owner(),
						Reason: "is already a member of molecule " + r.owner.String()}
				}
				residues = append(residues, r)
				atoms = append(atoms, r.atoms...)
			}
		}
		return l.mol.atoms.add(l.mol.atoms.Len(), atoms, extras{residues: residues, chains: chains})
	})
}

// Pop removes the chain at position at (negative counts from the end) along
// with its residues and their atoms. Links inside the chain are kept so it
// can be added to another molecule whole.
func (l *ChainList) Pop(at int) (*Chain, error) {
	var popped *Chain
	err := l.mol.run(OpPopChain, KindChain, 1, func() error {
		c, err := l.base.Pop(at)
		if err != nil {
			return err
		}
		popped = l.release(c)
		return nil
	})
	return popped, err
}

func (l *ChainList) Remove(c *Chain) error {
	return l.mol.run(OpPopChain, KindChain, 1, func() error {
		if err := l.base.Remove(c); err != nil {
			return err
		}
		l.release(c)
		return nil
	})
}

// release finishes a chain that has just left the list: its residues and
// their atoms leave with it.
func (l *ChainList) release(c *Chain) *Chain {
	m := l.mol
	m.releaseAtoms(atomSet(c.Atoms()))

	inChain := make(map[*Residue]struct{}, len(c.residues))
	for _, r := range c.residues {
		inChain[r] = struct{}{}
	}
	m.residues.base.removeWhere(func(r *Residue) bool {
		_, ok := inChain[r]
		return ok
	})

	if m.defChain == c {
		m.defChain = nil
	}
	if m.defResidue != nil && m.defResidue.chain == c {
		m.defResidue = nil
	}
	return c
}

package topology

import (
	"errors"
	"fmt"

	"github.com/san-kum/moltopo/internal/numeric"
)

// Names given to lazily created default containers.
const (
	DefaultResidueName = "UNL"
	DefaultChainName   = "Z"
)

// Molecule owns one master list per element kind and the derived arrays
// computed from its atoms. It is not safe for concurrent use.
type Molecule struct {
	id   MoleculeID
	name string

	atoms    *AtomList
	residues *ResidueList
	chains   *ChainList

	defResidue *Residue
	defChain   *Chain

	ndims     int
	masses    numeric.Array
	dimMasses *numeric.Matrix
	positions *numeric.Matrix
	momenta   *numeric.Matrix
	dof       int
	dofValid  bool

	log       Logger
	observers []Observer
}

func New(name string, opts ...Option) *Molecule {
	m := &Molecule{
		id:   newMoleculeID(),
		name: name,
		log:  NopLogger{},
	}
	m.atoms = &AtomList{base: newOwnedList[*Atom](m.id), mol: m}
	m.residues = &ResidueList{base: newOwnedList[*Residue](m.id), mol: m}
	m.chains = &ChainList{base: newOwnedList[*Chain](m.id), mol: m}
	m.recompute(nil)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Molecule) ID() MoleculeID         { return m.id }
func (m *Molecule) Name() string           { return m.name }
func (m *Molecule) Atoms() *AtomList       { return m.atoms }
func (m *Molecule) Residues() *ResidueList { return m.residues }
func (m *Molecule) Chains() *ChainList     { return m.chains }
func (m *Molecule) NDims() int             { return m.ndims }

func (m *Molecule) String() string {
	return fmt.Sprintf("molecule %s (#%s)", m.name, m.id)
}

// DOF returns the number of degrees of freedom. Constraints are not modelled,
// so it equals NDims; the value is cached until the next membership change.
func (m *Molecule) DOF() int {
	if !m.dofValid {
		m.dof = m.ndims
		m.dofValid = true
	}
	return m.dof
}

// Masses returns a copy of the per-atom masses in atom order.
func (m *Molecule) Masses() numeric.Array { return m.masses.Clone() }

// DimMasses returns a copy of the N×3 mass matrix: row i repeats the mass of
// atom i once per spatial dimension.
func (m *Molecule) DimMasses() *numeric.Matrix { return m.dimMasses.Clone() }

// Positions returns a copy of the N×3 position matrix.
func (m *Molecule) Positions() *numeric.Matrix { return m.positions.Clone() }

// Momenta returns a copy of the N×3 momentum matrix.
func (m *Molecule) Momenta() *numeric.Matrix { return m.momenta.Clone() }

func (m *Molecule) Position(a *Atom) (numeric.Vec3, error) {
	if err := m.checkOwned(a); err != nil {
		return numeric.Vec3{}, err
	}
	return m.positions.Row(a.index)
}

func (m *Molecule) Momentum(a *Atom) (numeric.Vec3, error) {
	if err := m.checkOwned(a); err != nil {
		return numeric.Vec3{}, err
	}
	return m.momenta.Row(a.index)
}

func (m *Molecule) SetPosition(a *Atom, v numeric.Vec3) error {
	if err := m.checkOwned(a); err != nil {
		return err
	}
	return m.positions.SetRow(a.index, v)
}

func (m *Molecule) SetMomentum(a *Atom, v numeric.Vec3) error {
	if err := m.checkOwned(a); err != nil {
		return err
	}
	return m.momenta.SetRow(a.index, v)
}

func (m *Molecule) checkOwned(a *Atom) error {
	if a == nil || a.owner != m.id || !m.atoms.Contains(a) {
		return fmt.Errorf("%w: %v", ErrNotOwned, a)
	}
	return nil
}

// AddToResidue grows a residue this molecule already owns. The atoms must be
// detached; they are inserted into the atom list right after the residue's
// last atom so a residue's atoms stay contiguous.
func (m *Molecule) AddToResidue(r *Residue, atoms ...*Atom) error {
	return m.run(OpAddToResidue, KindAtom, len(atoms), func() error {
		if r == nil || r.owner != m.id || !m.residues.Contains(r) {
			return &OwnershipError{Element: fmt.Sprint(r), Target: m.id,
				Reason: "is not a residue of " + m.String()}
		}
		if err := checkDetachedAtoms(atoms); err != nil {
			return err
		}
		if len(atoms) == 0 {
			return nil
		}

		at := m.atoms.Len()
		if len(r.atoms) > 0 {
			at = 0
			for _, a := range r.atoms {
				if a.index+1 > at {
					at = a.index + 1
				}
			}
		}

		for _, a := range atoms {
			r.link(a)
		}
		if err := m.atoms.add(at, atoms, extras{}); err != nil {
			for _, a := range atoms {
				r.unlink(a)
			}
			return err
		}
		return nil
	})
}

// Validate checks the live state against every membership invariant and
// returns all violations joined, each wrapping ErrInconsistent.
func (m *Molecule) Validate() error {
	var errs []error
	fail := func(format string, v ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInconsistent}, v...)...))
	}

	n := m.atoms.Len()
	for i, a := range m.atoms.base.list.items {
		if a.index != i {
			fail("%s stored at %d", a, i)
		}
		if a.owner != m.id {
			fail("%s owned by %s", a, a.owner)
		}
		if a.hasState {
			fail("%s still holds local state", a)
		}
		switch r := a.residue; {
		case r == nil:
			fail("%s has no residue", a)
		case r.owner != m.id:
			fail("%s in %s owned by %s", a, r, r.owner)
		}
	}
	for i, r := range m.residues.base.list.items {
		if r.index != i {
			fail("%s stored at %d", r, i)
		}
		if r.owner != m.id {
			fail("%s owned by %s", r, r.owner)
		}
		for _, a := range r.atoms {
			if a.owner != m.id {
				fail("%s holds %s owned by %s", r, a, a.owner)
			}
		}
		switch c := r.chain; {
		case c == nil:
			fail("%s has no chain", r)
		case c.owner != m.id:
			fail("%s in %s owned by %s", r, c, c.owner)
		}
	}
	for i, c := range m.chains.base.list.items {
		if c.index != i {
			fail("%s stored at %d", c, i)
		}
		if c.owner != m.id {
			fail("%s owned by %s", c, c.owner)
		}
	}

	if m.ndims != 3*n {
		fail("ndims %d for %d atoms", m.ndims, n)
	}
	if len(m.masses) != n || m.dimMasses.Rows() != n || m.positions.Rows() != n || m.momenta.Rows() != n {
		fail("derived arrays sized %d/%d/%d/%d for %d atoms",
			len(m.masses), m.dimMasses.Rows(), m.positions.Rows(), m.momenta.Rows(), n)
	}
	if !m.masses.IsValid() {
		fail("non-finite masses")
	}
	if !m.positions.Flat().IsValid() {
		fail("non-finite positions")
	}
	if !m.momenta.Flat().IsValid() {
		fail("non-finite momenta")
	}
	return errors.Join(errs...)
}

// run wraps one public operation: fn either fully commits or returns an
// error having changed nothing. Observers and the logger hear about both.
func (m *Molecule) run(op string, kind Kind, count int, fn func() error) error {
	err := fn()
	ev := Event{
		Molecule: m.name,
		Op:       op,
		Kind:     kind,
		Count:    count,
		Atoms:    m.atoms.Len(),
		Residues: m.residues.Len(),
		Chains:   m.chains.Len(),
	}
	if err != nil {
		m.log.Debugf("%s: %s rejected: %v", m, op, err)
		for _, o := range m.observers {
			o.OnReject(ev, err)
		}
		return err
	}
	m.log.Debugf("%s: %s committed %d %s(s); atoms=%d residues=%d chains=%d",
		m, op, count, kind, ev.Atoms, ev.Residues, ev.Chains)
	for _, o := range m.observers {
		o.OnCommit(ev)
	}
	return nil
}

func (m *Molecule) defaultResidue() *Residue {
	if m.defResidue == nil {
		m.defResidue = NewResidue(DefaultResidueName)
		m.log.Debugf("%s: created default residue", m)
	}
	return m.defResidue
}

func (m *Molecule) defaultChain() *Chain {
	if m.defChain == nil {
		m.defChain = NewChain(DefaultChainName)
		m.log.Debugf("%s: created default chain", m)
	}
	return m.defChain
}

// backfill puts atoms without a residue into the default residue and
// residues without a chain into the default chain.
func (m *Molecule) backfill(atoms []*Atom) {
	for _, a := range atoms {
		if a.residue == nil {
			m.defaultResidue().link(a)
		}
		m.backfillChain(a.residue)
	}
}

func (m *Molecule) backfillChain(r *Residue) {
	if r.chain == nil {
		m.defaultChain().link(r)
	}
}

// register adds the batch's new residues and chains to their master lists in
// batch order: containers the batch names come first, then those reached
// only through its atoms. Each is registered the first time it is seen,
// whether or not it holds atoms. Residues go in as one batch; chains follow
// in the order their residues introduce them.
func (m *Molecule) register(atoms []*Atom, ex extras) {
	var residues []*Residue
	seen := make(map[*Residue]struct{})
	visit := func(r *Residue) {
		if _, ok := seen[r]; ok || r.owner == m.id {
			return
		}
		seen[r] = struct{}{}
		m.backfillChain(r)
		residues = append(residues, r)
	}
	for _, r := range ex.residues {
		visit(r)
	}
	for _, a := range atoms {
		visit(a.residue)
	}
	if err := m.residues.base.AddMany(residues); err != nil {
		panic(fmt.Sprintf("topology: registering residues: %v", err))
	}

	for _, c := range ex.chains {
		m.registerChain(c)
	}
	for _, r := range residues {
		m.registerChain(r.chain)
	}
}

func (m *Molecule) registerChain(c *Chain) {
	if c.owner == m.id {
		return
	}
	if err := m.chains.base.Add(c); err != nil {
		panic(fmt.Sprintf("topology: registering %s: %v", c, err))
	}
}

// releaseAtoms removes every atom in set from the atom list in one batch.
// Each atom gets its position and momentum back and loses its owner; its
// residue link is left to the caller.
func (m *Molecule) releaseAtoms(set map[*Atom]struct{}) []*Atom {
	if len(set) == 0 {
		return nil
	}
	for a := range set {
		pos, _ := m.positions.Row(a.index)
		mom, _ := m.momenta.Row(a.index)
		a.restoreState(pos, mom)
	}
	removed, origin := m.atoms.detach(func(a *Atom) bool {
		_, ok := set[a]
		return ok
	})
	m.recompute(origin)
	return removed
}

// recompute rebuilds every derived array from the current atom order.
// origin[j] is the index atom j held before the mutation, or -1 for an atom
// whose state still lives on the atom itself.
func (m *Molecule) recompute(origin []int) {
	atoms := m.atoms.base.list.items
	n := len(atoms)
	masses := make(numeric.Array, n)
	pos := make([]numeric.Vec3, n)
	mom := make([]numeric.Vec3, n)

	for j, a := range atoms {
		masses[j] = a.mass
		if i := origin[j]; i >= 0 {
			pos[j], _ = m.positions.Row(i)
			mom[j], _ = m.momenta.Row(i)
		} else {
			pos[j], mom[j] = a.position, a.momentum
		}
	}

	m.ndims = 3 * n
	m.masses = masses
	m.dimMasses = numeric.Broadcast(masses, 3)
	m.positions = numeric.Stack(pos)
	m.momenta = numeric.Stack(mom)
	m.dofValid = false
}

func atomSet(atoms []*Atom) map[*Atom]struct{} {
	set := make(map[*Atom]struct{}, len(atoms))
	for _, a := range atoms {
		set[a] = struct{}{}
	}
	return set
}

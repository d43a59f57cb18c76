package topology

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/san-kum/moltopo/internal/numeric"
)

// MoleculeID identifies the molecule that owns an element. Zero means the
// element is detached.
type MoleculeID uint64

func (id MoleculeID) String() string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

var lastMoleculeID atomic.Uint64

func newMoleculeID() MoleculeID {
	return MoleculeID(lastMoleculeID.Add(1))
}

// Atom is the finest element of a molecule. Its position and momentum are
// held locally only while it is detached; once a molecule owns it they live
// in the molecule's batched arrays.
type Atom struct {
	name     string
	mass     float64
	position numeric.Vec3
	momentum numeric.Vec3
	hasState bool

	index   int
	owner   MoleculeID
	residue *Residue
}

func NewAtom(name string, mass float64, position, momentum numeric.Vec3) *Atom {
	return &Atom{
		name:     name,
		mass:     mass,
		position: position,
		momentum: momentum,
		hasState: true,
		index:    -1,
	}
}

func (a *Atom) Name() string      { return a.name }
func (a *Atom) Mass() float64     { return a.mass }
func (a *Atom) Index() int        { return a.index }
func (a *Atom) Owner() MoleculeID { return a.owner }
func (a *Atom) Residue() *Residue { return a.residue }

// Chain returns the chain of the atom's residue, if any.
func (a *Atom) Chain() *Chain {
	if a.residue == nil {
		return nil
	}
	return a.residue.chain
}

// Position returns the locally held position. ok is false while a molecule
// owns the atom; use Molecule.Position instead.
func (a *Atom) Position() (pos numeric.Vec3, ok bool) {
	return a.position, a.hasState
}

// Momentum returns the locally held momentum. ok is false while a molecule
// owns the atom; use Molecule.Momentum instead.
func (a *Atom) Momentum() (mom numeric.Vec3, ok bool) {
	return a.momentum, a.hasState
}

func (a *Atom) String() string {
	return fmt.Sprintf("atom %s (#%d)", a.name, a.index)
}

func (a *Atom) setIndex(i int)        { a.index = i }
func (a *Atom) setOwner(m MoleculeID) { a.owner = m }

func (a *Atom) clearState() {
	a.position, a.momentum = numeric.Vec3{}, numeric.Vec3{}
	a.hasState = false
}

func (a *Atom) restoreState(pos, mom numeric.Vec3) {
	a.position, a.momentum = pos, mom
	a.hasState = true
}

// Residue groups atoms and optionally belongs to a chain.
type Residue struct {
	name  string
	index int
	owner MoleculeID
	chain *Chain
	atoms []*Atom
}

func NewResidue(name string) *Residue {
	return &Residue{name: name, index: -1}
}

func (r *Residue) Name() string      { return r.name }
func (r *Residue) Index() int        { return r.index }
func (r *Residue) Owner() MoleculeID { return r.owner }
func (r *Residue) Chain() *Chain     { return r.chain }
func (r *Residue) Len() int          { return len(r.atoms) }

func (r *Residue) Atoms() []*Atom {
	out := make([]*Atom, len(r.atoms))
	copy(out, r.atoms)
	return out
}

// Add links detached atoms into a detached residue. Residues owned by a
// molecule grow through Molecule.AddToResidue instead.
func (r *Residue) Add(atoms ...*Atom) error {
	if r.owner != 0 {
		return &OwnershipError{Element: r.String(), Owner: r.owner,
			Reason: "is owned by molecule " + r.owner.String() + "; grow it through the molecule"}
	}
	if err := checkDetachedAtoms(atoms); err != nil {
		return err
	}
	for _, a := range atoms {
		r.link(a)
	}
	return nil
}

func (r *Residue) String() string {
	return fmt.Sprintf("residue %s (#%d)", r.name, r.index)
}

func (r *Residue) setIndex(i int)        { r.index = i }
func (r *Residue) setOwner(m MoleculeID) { r.owner = m }

func (r *Residue) link(a *Atom) {
	a.residue = r
	r.atoms = append(r.atoms, a)
}

func (r *Residue) unlink(a *Atom) {
	for i, x := range r.atoms {
		if x == a {
			r.atoms = append(r.atoms[:i], r.atoms[i+1:]...)
			break
		}
	}
	a.residue = nil
}

// Chain groups residues.
type Chain struct {
	name     string
	index    int
	owner    MoleculeID
	residues []*Residue
}

func NewChain(name string) *Chain {
	return &Chain{name: name, index: -1}
}

func (c *Chain) Name() string      { return c.name }
func (c *Chain) Index() int        { return c.index }
func (c *Chain) Owner() MoleculeID { return c.owner }
func (c *Chain) Len() int          { return len(c.residues) }

func (c *Chain) Residues() []*Residue {
	out := make([]*Residue, len(c.residues))
	copy(out, c.residues)
	return out
}

// Atoms returns every atom of every residue in the chain, residue by residue.
func (c *Chain) Atoms() []*Atom {
	var out []*Atom
	for _, r := range c.residues {
		out = append(out, r.atoms...)
	}
	return out
}

// Add links detached residues into a detached chain.
func (c *Chain) Add(residues ...*Residue) error {
	if c.owner != 0 {
		return &OwnershipError{Element: c.String(), Owner: c.owner,
			Reason: "is owned by molecule " + c.owner.String() + "; add residues through the molecule"}
	}
	seen := make(map[*Residue]struct{}, len(residues))
	for _, r := range residues {
		if r == nil {
			return nilElement(0)
		}
		if _, dup := seen[r]; dup {
			return &OwnershipError{Element: r.String(), Reason: "appears more than once in the batch"}
		}
		seen[r] = struct{}{}
		if r.owner != 0 {
			return &OwnershipError{Element: r.String(), Owner: r.owner,
				Reason: "is already a member of molecule " + r.owner.String()}
		}
		if r.chain != nil {
			return &OwnershipError{Element: r.String(), Container: r.chain.String()}
		}
	}
	for _, r := range residues {
		c.link(r)
	}
	return nil
}

func (c *Chain) String() string {
	return fmt.Sprintf("chain %s (#%d)", c.name, c.index)
}

func (c *Chain) setIndex(i int)        { c.index = i }
func (c *Chain) setOwner(m MoleculeID) { c.owner = m }

func (c *Chain) link(r *Residue) {
	r.chain = c
	c.residues = append(c.residues, r)
}

func (c *Chain) unlink(r *Residue) {
	for i, x := range c.residues {
		if x == r {
			c.residues = append(c.residues[:i], c.residues[i+1:]...)
			break
		}
	}
	r.chain = nil
}

// checkDetachedAtoms rejects atoms that are owned, already in a residue, or
// repeated.
func checkDetachedAtoms(atoms []*Atom) error {
	seen := make(map[*Atom]struct{}, len(atoms))
	for _, a := range atoms {
		if a == nil {
			return nilElement(0)
		}
		if _, dup := seen[a]; dup {
			return &OwnershipError{Element: a.String(), Reason: "appears more than once in the batch"}
		}
		seen[a] = struct{}{}
		if a.owner != 0 {
			return &OwnershipError{Element: a.String(), Owner: a.owner,
				Reason: "is already a member of molecule " + a.owner.String()}
		}
		if a.residue != nil {
			return &OwnershipError{Element: a.String(), Container: a.residue.String()}
		}
	}
	return nil
}

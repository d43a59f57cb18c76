// Package topology maintains the membership hierarchy of a molecule: atoms
// grouped into residues, residues grouped into chains.
//
// A [Molecule] owns one master list per element kind:
//
//   - [AtomList]: the single entry point for new structure
//   - [ResidueList]: adds residues by adding their atoms
//   - [ChainList]: adds chains by adding their residues' atoms
//
// Each element is in at most one master list at a time, and an atom's owner
// always equals its residue's owner, which equals its chain's owner. Atoms
// added without a residue go into a lazily created default residue, and
// residues without a chain go into a default chain.
//
// # Batches
//
// Every mutation validates the whole batch before touching anything. A
// failed call returns an [OwnershipError], [StructureError] or
// [IdentityError] (match with errors.Is against [ErrOwnership],
// [ErrStructure], [ErrIdentity]) and leaves the molecule exactly as it was.
//
// # Derived arrays
//
// Masses, the N×3 per-dimension masses, positions and momenta are rebuilt
// together from the current atom order after every membership change, so
// their lengths always match the atom count and NDims is 3×N. An atom's
// position and momentum move into these arrays when the molecule takes it
// and move back onto the atom when it is popped.
//
// # Example
//
//	res := topology.NewResidue("HOH")
//	_ = res.Add(
//	    topology.NewAtom("O", 15.999, numeric.Vec3{0, 0, 0}, numeric.Vec3{}),
//	    topology.NewAtom("H1", 1.008, numeric.Vec3{0.96, 0, 0}, numeric.Vec3{}),
//	    topology.NewAtom("H2", 1.008, numeric.Vec3{-0.24, 0.93, 0}, numeric.Vec3{}),
//	)
//	mol := topology.New("water")
//	if err := mol.Residues().Add(res); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Molecules are NOT thread-safe. Build separate molecules on separate
// goroutines if needed; only molecule ID allocation is shared.
package topology

package topology

import (
	"errors"
	"fmt"
)

// Domain errors for membership operations.
var (
	// ErrOwnership indicates an element is already owned by a molecule, is
	// duplicated, or sits in a container owned by a different molecule.
	ErrOwnership = errors.New("topology: ownership violation")

	// ErrStructure indicates a batch would split a residue or chain between
	// molecules.
	ErrStructure = errors.New("topology: batch fragments a larger structure")

	// ErrIdentity indicates a remove target does not match the element stored
	// at its index.
	ErrIdentity = errors.New("topology: element does not match its indexed slot")

	// ErrIndexRange indicates a position outside the list.
	ErrIndexRange = errors.New("topology: index out of range")

	// ErrNotOwned indicates per-atom state was requested from a molecule that
	// does not own the atom.
	ErrNotOwned = errors.New("topology: atom not owned by this molecule")

	// ErrInconsistent is returned by Molecule.Validate when live state breaks
	// an ownership, index or derived-array invariant.
	ErrInconsistent = errors.New("topology: inconsistent molecule state")
)

// OwnershipError reports which element could not be added and why.
type OwnershipError struct {
	Element   string
	Owner     MoleculeID
	Target    MoleculeID
	Container string
	Reason    string
}

func (e *OwnershipError) Error() string {
	if e.Container != "" && e.Target == 0 {
		return fmt.Sprintf("%s is already part of %s", e.Element, e.Container)
	}
	if e.Container != "" {
		return fmt.Sprintf("cannot individually assign %s to molecule %d because it is part of %s", e.Element, e.Target, e.Container)
	}
	return fmt.Sprintf("%s: %s", e.Element, e.Reason)
}

func (e *OwnershipError) Unwrap() error { return ErrOwnership }

// StructureError reports the container a batch would fragment and the first
// atom of it missing from the batch.
type StructureError struct {
	Container string
	Missing   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("can't add atoms - they belong to a larger structure (%s) not wholly included in this batch: missing %s", e.Container, e.Missing)
}

func (e *StructureError) Unwrap() error { return ErrStructure }

type IdentityError struct {
	Element string
	Index   int
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("%s is not the element stored at index %d", e.Element, e.Index)
}

func (e *IdentityError) Unwrap() error { return ErrIdentity }

func nilElement(target MoleculeID) error {
	return &OwnershipError{Element: "<nil>", Target: target, Reason: "cannot be added"}
}

func indexRange(i, n int) error {
	return fmt.Errorf("%w: %d (len %d)", ErrIndexRange, i, n)
}

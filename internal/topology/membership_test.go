package topology_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
)

func peptide(names ...string) (*topology.Chain, []*topology.Residue) {
	chain := topology.NewChain("A")
	var residues []*topology.Residue
	for i, n := range names {
		r := topology.NewResidue(n)
		x := float64(i) * 3.8
		Expect(r.Add(
			topology.NewAtom("N", 14.007, numeric.Vec3{x, 0, 0}, numeric.Vec3{}),
			topology.NewAtom("CA", 12.011, numeric.Vec3{x + 1.46, 0, 0}, numeric.Vec3{}),
			topology.NewAtom("C", 12.011, numeric.Vec3{x + 2.5, 0.9, 0}, numeric.Vec3{}),
		)).To(Succeed())
		residues = append(residues, r)
	}
	Expect(chain.Add(residues...)).To(Succeed())
	return chain, residues
}

func coherent(m *topology.Molecule) {
	ExpectWithOffset(1, m.Validate()).To(Succeed())
	n := m.Atoms().Len()
	ExpectWithOffset(1, m.NDims()).To(Equal(3 * n))
	ExpectWithOffset(1, m.Masses()).To(HaveLen(n))
	ExpectWithOffset(1, m.Positions().Rows()).To(Equal(n))
	ExpectWithOffset(1, m.Momenta().Rows()).To(Equal(n))
	ExpectWithOffset(1, m.DimMasses().Rows()).To(Equal(n))
}

var _ = Describe("Molecule membership", func() {
	var mol *topology.Molecule

	BeforeEach(func() {
		mol = topology.New("protein")
	})

	Context("when a whole chain is added", func() {
		var (
			chain    *topology.Chain
			residues []*topology.Residue
		)

		BeforeEach(func() {
			chain, residues = peptide("ALA", "GLY", "SER")
			Expect(mol.Chains().Add(chain)).To(Succeed())
		})

		It("registers every element in order", func() {
			Expect(mol.Chains().Items()).To(Equal([]*topology.Chain{chain}))
			Expect(mol.Residues().Items()).To(Equal(residues))
			Expect(mol.Atoms().Len()).To(Equal(9))
			for i, a := range mol.Atoms().Items() {
				Expect(a.Index()).To(Equal(i))
				Expect(a.Owner()).To(Equal(mol.ID()))
				Expect(a.Chain()).To(BeIdenticalTo(chain))
			}
			coherent(mol)
		})

		It("rejects the same chain a second time", func() {
			err := mol.Chains().Add(chain)
			Expect(err).To(MatchError(topology.ErrOwnership))
			Expect(mol.Atoms().Len()).To(Equal(9))
		})

		It("rejects a single residue going to another molecule", func() {
			other := topology.New("other")
			Expect(other.Residues().Add(residues[1])).To(MatchError(topology.ErrOwnership))
			Expect(other.Atoms().Len()).To(BeZero())
			coherent(mol)
		})

		It("shifts later atoms when a residue grows", func() {
			last := residues[2].Atoms()[0]
			cb := topology.NewAtom("CB", 12.011, numeric.Vec3{1, 1, 1}, numeric.Vec3{})
			Expect(mol.AddToResidue(residues[0], cb)).To(Succeed())

			Expect(cb.Index()).To(Equal(3))
			Expect(last.Index()).To(Equal(7))
			pos, err := mol.Position(last)
			Expect(err).NotTo(HaveOccurred())
			Expect(pos).To(Equal(numeric.Vec3{7.6, 0, 0}))
			coherent(mol)
		})

		Describe("popping", func() {
			It("cascades a residue pop to its atoms", func() {
				r, err := mol.Residues().Pop(1)
				Expect(err).NotTo(HaveOccurred())
				Expect(r).To(BeIdenticalTo(residues[1]))
				Expect(r.Chain()).To(BeNil())
				Expect(r.Atoms()).To(HaveLen(3))
				Expect(chain.Residues()).To(Equal([]*topology.Residue{residues[0], residues[2]}))
				Expect(mol.Atoms().Len()).To(Equal(6))
				coherent(mol)
			})

			It("cascades a chain pop to residues and atoms", func() {
				c, err := mol.Chains().Pop(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(c.Residues()).To(Equal(residues))
				Expect(mol.Atoms().Len()).To(BeZero())
				Expect(mol.Residues().Len()).To(BeZero())
				Expect(mol.Chains().Len()).To(BeZero())
				coherent(mol)
			})

			It("gives atoms their state back", func() {
				a := residues[2].Atoms()[1]
				Expect(mol.SetMomentum(a, numeric.Vec3{0, 0, 2})).To(Succeed())
				Expect(mol.Atoms().Remove(a)).To(Succeed())

				mom, ok := a.Momentum()
				Expect(ok).To(BeTrue())
				Expect(mom).To(Equal(numeric.Vec3{0, 0, 2}))
				Expect(a.Residue()).To(BeNil())
				Expect(residues[2].Len()).To(Equal(2))
				coherent(mol)
			})

			It("fails on an index outside the list", func() {
				_, err := mol.Chains().Pop(3)
				Expect(err).To(MatchError(topology.ErrIndexRange))
			})
		})
	})

	Context("when a batch would fragment a structure", func() {
		It("leaves the molecule untouched", func() {
			_, residues := peptide("LYS", "ARG")
			err := mol.Residues().Add(residues[0])

			var se *topology.StructureError
			Expect(err).To(MatchError(topology.ErrStructure))
			Expect(err).To(BeAssignableToTypeOf(se))
			Expect(mol.Atoms().Len()).To(BeZero())
			Expect(residues[0].Owner()).To(Equal(topology.MoleculeID(0)))
		})
	})

	Context("with loose atoms", func() {
		It("files them under the default residue and chain", func() {
			ar := topology.NewAtom("Ar", 39.948, numeric.Vec3{}, numeric.Vec3{})
			Expect(mol.Atoms().Add(ar)).To(Succeed())
			Expect(ar.Residue().Name()).To(Equal(topology.DefaultResidueName))
			Expect(ar.Chain().Name()).To(Equal(topology.DefaultChainName))
			Expect(mol.DOF()).To(Equal(3))
			coherent(mol)
		})
	})
})

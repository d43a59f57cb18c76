package metrics

import (
	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
)

// Kinetic averages the kinetic energy sum(p²/2m) of the molecules it
// observes. Massless atoms contribute nothing. Samples with a non-finite
// energy are counted as skipped and left out of the average.
type Kinetic struct {
	name        string
	samples     int
	skipped     int
	totalEnergy float64
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic_energy"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(mol *topology.Molecule) {
	ke := PerAtomKinetic(mol)
	if !ke.IsValid() {
		k.skipped++
		return
	}
	k.totalEnergy += ke.Sum()
	k.samples++
}

func (k *Kinetic) Skipped() int { return k.skipped }

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.totalEnergy / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.totalEnergy = 0
	k.samples = 0
	k.skipped = 0
}

// PerAtomKinetic returns each atom's kinetic energy in atom order, using the
// per-dimension masses so every momentum component is divided by its own
// mass entry.
func PerAtomKinetic(mol *topology.Molecule) numeric.Array {
	mom := mol.Momenta()
	dm := mol.DimMasses()
	out := make(numeric.Array, mom.Rows())
	for i := range out {
		for j := 0; j < mom.Cols(); j++ {
			m := dm.At(i, j)
			if m <= 0 {
				continue
			}
			p := mom.At(i, j)
			out[i] += p * p / (2 * m)
		}
	}
	return out
}

// MomentumNorms returns |p| for each atom in atom order.
func MomentumNorms(mol *topology.Molecule) numeric.Array {
	mom := mol.Momenta()
	out := make(numeric.Array, mom.Rows())
	for i := range out {
		p, _ := mom.Row(i)
		out[i] = p.Norm()
	}
	return out
}

// Package assemble turns a molecule description into a live
// topology.Molecule.
package assemble

import (
	"fmt"

	"github.com/san-kum/moltopo/internal/config"
	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
)

type Builder struct {
	cfg  *config.Config
	opts []topology.Option
}

func New(cfg *config.Config, opts ...topology.Option) *Builder {
	return &Builder{cfg: cfg, opts: opts}
}

// Build creates every element detached, links residues and chains, then
// hands them to the molecule one list at a time: chains first, then
// chainless residues, then loose atoms.
func (b *Builder) Build() (*topology.Molecule, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("assemble: no config")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	mol := topology.New(b.cfg.Name, b.opts...)

	chains := make([]*topology.Chain, 0, len(b.cfg.Chains))
	for _, cc := range b.cfg.Chains {
		c := topology.NewChain(cc.Name)
		for _, rc := range cc.Residues {
			r, err := residue(rc)
			if err != nil {
				return nil, err
			}
			if err := c.Add(r); err != nil {
				return nil, fmt.Errorf("assemble: chain %s: %w", cc.Name, err)
			}
		}
		chains = append(chains, c)
	}
	if len(chains) > 0 {
		if err := mol.Chains().AddMany(chains); err != nil {
			return nil, fmt.Errorf("assemble: add chains: %w", err)
		}
	}

	residues := make([]*topology.Residue, 0, len(b.cfg.Residues))
	for _, rc := range b.cfg.Residues {
		r, err := residue(rc)
		if err != nil {
			return nil, err
		}
		residues = append(residues, r)
	}
	if len(residues) > 0 {
		if err := mol.Residues().AddMany(residues); err != nil {
			return nil, fmt.Errorf("assemble: add residues: %w", err)
		}
	}

	if len(b.cfg.Atoms) > 0 {
		if err := mol.Atoms().AddMany(atoms(b.cfg.Atoms)); err != nil {
			return nil, fmt.Errorf("assemble: add atoms: %w", err)
		}
	}
	return mol, nil
}

func residue(rc config.ResidueConfig) (*topology.Residue, error) {
	r := topology.NewResidue(rc.Name)
	if err := r.Add(atoms(rc.Atoms)...); err != nil {
		return nil, fmt.Errorf("assemble: residue %s: %w", rc.Name, err)
	}
	return r, nil
}

func atoms(acs []config.AtomConfig) []*topology.Atom {
	out := make([]*topology.Atom, len(acs))
	for i, ac := range acs {
		out[i] = topology.NewAtom(ac.Name, ac.Mass, numeric.Vec3(ac.Position), numeric.Vec3(ac.Momentum))
	}
	return out
}

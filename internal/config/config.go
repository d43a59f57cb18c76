package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultName     = "molecule"
	DefaultLogLevel = "info"
	DefaultPreset   = "water"
)

// Config describes a molecule to assemble. Chains carry their residues,
// Residues are residues outside any chain and Atoms are loose atoms; the
// last two end up in the molecule's default containers.
type Config struct {
	Name     string          `yaml:"name"`
	LogLevel string          `yaml:"log_level"`
	Chains   []ChainConfig   `yaml:"chains,omitempty"`
	Residues []ResidueConfig `yaml:"residues,omitempty"`
	Atoms    []AtomConfig    `yaml:"atoms,omitempty"`
}

type ChainConfig struct {
	Name     string          `yaml:"name"`
	Residues []ResidueConfig `yaml:"residues"`
}

type ResidueConfig struct {
	Name  string       `yaml:"name"`
	Atoms []AtomConfig `yaml:"atoms"`
}

type AtomConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position,flow"`
	Momentum [3]float64 `yaml:"momentum,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     DefaultName,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects entries the assembler cannot turn into elements.
func (c *Config) Validate() error {
	check := func(where string, a AtomConfig) error {
		if a.Name == "" {
			return fmt.Errorf("%s: atom without a name", where)
		}
		if a.Mass < 0 {
			return fmt.Errorf("%s: atom %s has negative mass %g", where, a.Name, a.Mass)
		}
		return nil
	}
	for _, ch := range c.Chains {
		if ch.Name == "" {
			return errors.New("chain without a name")
		}
		for _, r := range ch.Residues {
			for _, a := range r.Atoms {
				if err := check("chain "+ch.Name+"/"+r.Name, a); err != nil {
					return err
				}
			}
		}
	}
	for _, r := range c.Residues {
		for _, a := range r.Atoms {
			if err := check("residue "+r.Name, a); err != nil {
				return err
			}
		}
	}
	for _, a := range c.Atoms {
		if err := check("loose atoms", a); err != nil {
			return err
		}
	}
	return nil
}

// AtomCount returns the number of atoms the config describes.
func (c *Config) AtomCount() int {
	n := len(c.Atoms)
	for _, r := range c.Residues {
		n += len(r.Atoms)
	}
	for _, ch := range c.Chains {
		for _, r := range ch.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

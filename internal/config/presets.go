package config

import "sort"

const (
	massH = 1.008
	massC = 12.011
	massN = 14.007
	massO = 15.999
)

func waterResidue(name string, x float64) ResidueConfig {
	return ResidueConfig{Name: name, Atoms: []AtomConfig{
		{Name: "O", Mass: massO, Position: [3]float64{x, 0, 0}},
		{Name: "H1", Mass: massH, Position: [3]float64{x + 0.957, 0, 0}},
		{Name: "H2", Mass: massH, Position: [3]float64{x - 0.240, 0.927, 0}},
	}}
}

func backbone(name string, x float64) ResidueConfig {
	return ResidueConfig{Name: name, Atoms: []AtomConfig{
		{Name: "N", Mass: massN, Position: [3]float64{x, 0, 0}},
		{Name: "CA", Mass: massC, Position: [3]float64{x + 1.458, 0, 0}},
		{Name: "C", Mass: massC, Position: [3]float64{x + 2.009, 1.420, 0}},
		{Name: "O", Mass: massO, Position: [3]float64{x + 1.251, 2.390, 0}},
	}}
}

var Presets = map[string]*Config{
	"water": {
		Name: "water", LogLevel: DefaultLogLevel,
		Residues: []ResidueConfig{waterResidue("HOH", 0)},
	},
	"dipeptide": {
		Name: "dipeptide", LogLevel: DefaultLogLevel,
		Chains: []ChainConfig{{Name: "A", Residues: []ResidueConfig{
			backbone("ALA", 0),
			backbone("GLY", 3.8),
		}}},
	},
	"ions": {
		Name: "ions", LogLevel: DefaultLogLevel,
		Atoms: []AtomConfig{
			{Name: "NA", Mass: 22.990, Position: [3]float64{0, 0, 0}, Momentum: [3]float64{0.5, 0, 0}},
			{Name: "CL", Mass: 35.453, Position: [3]float64{2.8, 0, 0}, Momentum: [3]float64{-0.5, 0, 0}},
			{Name: "K", Mass: 39.098, Position: [3]float64{0, 3.1, 0}, Momentum: [3]float64{0, 0.2, 0.1}},
		},
	},
	"two-chain": {
		Name: "two-chain", LogLevel: DefaultLogLevel,
		Chains: []ChainConfig{
			{Name: "A", Residues: []ResidueConfig{backbone("SER", 0), backbone("THR", 3.8)}},
			{Name: "B", Residues: []ResidueConfig{backbone("LYS", 0), backbone("ARG", 3.8), backbone("GLU", 7.6)}},
		},
		Residues: []ResidueConfig{waterResidue("HOH", 12), waterResidue("HOH", 15)},
		Atoms:    []AtomConfig{{Name: "MG", Mass: 24.305, Position: [3]float64{5, 5, 5}}},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

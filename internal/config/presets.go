package config

import "sort"

// Presets are ready-to-run configurations by name.
var Presets = map[string]*Config{
	"wca-fluid": {
		Particles: 50, Box: []float64{10}, Mass: 1.0,
		Potential: PotentialConfig{Epsilon: 1.0, Sigma: 1.0, WCA: true},
		Dt:        0.005, Steps: 5000, KT: 1.5, Thermostat: true,
		SampleEvery: 50, Init: "random", MinDist: 1.0, MaxAttempts: 100,
	},
	"lj-liquid": {
		Particles: 125, Box: []float64{6.5}, Mass: 1.0,
		Potential: PotentialConfig{Epsilon: 1.0, Sigma: 1.0, Rcut: 3.0, Shift: true},
		Dt:        0.002, Steps: 10000, KT: 0.85, Thermostat: true,
		SampleEvery: 100, Init: "lattice",
	},
	"lj-gas": {
		Particles: 30, Box: []float64{20}, Mass: 1.0,
		Potential: PotentialConfig{Epsilon: 1.0, Sigma: 1.0, Rcut: 3.0},
		Dt:        0.005, Steps: 5000, KT: 2.0, Thermostat: true,
		SampleEvery: 50, Init: "random", MinDist: 1.0, MaxAttempts: 100,
	},
	"nve-drift": {
		// No thermostat: watch how well velocity Verlet conserves energy.
		Particles: 50, Box: []float64{10}, Mass: 1.0,
		Potential: PotentialConfig{Epsilon: 1.0, Sigma: 1.0, WCA: true},
		Dt:        0.001, Steps: 20000, KT: 1.0,
		SampleEvery: 200, Init: "random", MinDist: 1.0, MaxAttempts: 100,
	},
}

// GetPreset returns a copy of a named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Box = append([]float64(nil), p.Box...)
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

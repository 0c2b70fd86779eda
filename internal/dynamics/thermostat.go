package dynamics

import (
	"errors"
	"math"

	"github.com/san-kum/molsim/internal/analyze"
	"github.com/san-kum/molsim/internal/state"
)

// ErrTargetKT indicates a rescale target that is not positive.
var ErrTargetKT = errors.New("dynamics: target kT must be positive")

// VelocityRescale is an aggressive isokinetic thermostat: when the
// instantaneous kT wanders more than Tolerance (relative) from TargetKT,
// all velocities are rescaled by sqrt(target/current). Crude, but good
// enough to hold an equilibration run near its setpoint.
type VelocityRescale struct {
	TargetKT  float64
	Tolerance float64
}

// NewVelocityRescale creates a rescaling thermostat with a 2% relative
// tolerance around the target thermal energy.
func NewVelocityRescale(targetKT float64) (*VelocityRescale, error) {
	if targetKT <= 0 {
		return nil, ErrTargetKT
	}
	return &VelocityRescale{TargetKT: targetKT, Tolerance: 0.02}, nil
}

// Apply rescales the velocities when the temperature has drifted outside
// the tolerance band.
func (th *VelocityRescale) Apply(s *state.State) error {
	kt, err := analyze.Temperature(s)
	if err != nil {
		return err
	}
	if kt == 0 {
		return nil
	}

	if math.Abs(kt-th.TargetKT)/th.TargetKT > th.Tolerance {
		scale := math.Sqrt(th.TargetKT / kt)
		for i := range s.Velocities {
			s.Velocities[i] = s.Velocities[i].Scale(scale)
		}
	}
	return nil
}

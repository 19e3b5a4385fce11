package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Tuning holds every gameplay constant that may be overridden at startup.
type Tuning struct {
	CellSize      float64                  `yaml:"cell_size"`
	Offset        float64                  `yaml:"offset"`
	PlayerSpeed   float64                  `yaml:"player_speed"`
	AgentSpeed    float64                  `yaml:"agent_speed"`
	ReturnSpeed   float64                  `yaml:"return_speed"`
	ScareDuration time.Duration            `yaml:"scare_duration"`
	RespawnDelay  time.Duration            `yaml:"respawn_delay"`
	ReleaseDelays map[string]time.Duration `yaml:"release_delays"`
	Roster        []Role                   `yaml:"roster"`
	Fruit         string                   `yaml:"fruit"`
	Points        PointValues              `yaml:"points"`
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return Tuning{
		CellSize:      CellSize,
		Offset:        BoardOffset,
		PlayerSpeed:   PlayerSpeed,
		AgentSpeed:    AgentSpeed,
		ReturnSpeed:   ReturnSpeed,
		ScareDuration: ScareDuration,
		RespawnDelay:  RespawnDelay,
		Roster:        Roles(),
		Fruit:         "cherry",
		Points:        DefaultPointValues(),
	}
}

// Validate checks that every speed keeps entities on the lattice of grid
// lines. Spawn points sit on half cells, so speeds must divide half a cell.
func (t Tuning) Validate() error {
	var errs []error

	if t.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %v", t.CellSize))
	}
	if t.ScareDuration < 0 || t.RespawnDelay < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if !t.fitsLattice(t.PlayerSpeed) {
		errs = append(errs, fmt.Errorf("player_speed %v must divide half of cell_size %v", t.PlayerSpeed, t.CellSize))
	}

	seen := make(map[Role]bool, len(t.Roster))
	for _, role := range t.Roster {
		if _, ok := roleProfiles[role]; !ok {
			errs = append(errs, fmt.Errorf("roster has unknown role %d", int(role)))
			continue
		}
		if seen[role] {
			errs = append(errs, fmt.Errorf("roster lists %s twice", role))
		}
		seen[role] = true

		speed := t.AgentSpeed * float64(role.Profile().SpeedScale)
		if !t.fitsLattice(speed) {
			errs = append(errs, fmt.Errorf("%s speed %v must divide half of cell_size %v", role, speed, t.CellSize))
		} else if t.ReturnSpeed < speed || math.Mod(t.ReturnSpeed, speed) != 0 {
			errs = append(errs, fmt.Errorf("return_speed %v must be a multiple of %s speed %v", t.ReturnSpeed, role, speed))
		}
	}

	for name, d := range t.ReleaseDelays {
		var r Role
		if err := r.UnmarshalText([]byte(name)); err != nil {
			errs = append(errs, fmt.Errorf("release_delays: %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("release_delays: %s must not be negative", name))
		}
	}

	if _, ok := t.Points.Fruit[t.Fruit]; !ok {
		errs = append(errs, fmt.Errorf("fruit %q has no point value", t.Fruit))
	}
	if len(t.Points.ChainTiers) == 0 {
		errs = append(errs, errors.New("points.chain_tiers must not be empty"))
	}

	return errors.Join(errs...)
}

func (t Tuning) fitsLattice(speed float64) bool {
	return speed > 0 && t.CellSize > 0 && math.Mod(t.CellSize/2, speed) == 0
}

func (t Tuning) releaseDelay(r Role) time.Duration {
	if d, ok := t.ReleaseDelays[r.String()]; ok {
		return d
	}
	return r.Profile().ReleaseDelay
}

package weighting

import (
	"errors"
	"sort"
)

//*******************************************
// profiles
//*******************************************

// Named set of penalty coefficients.
type Profile struct {
	Name     string  `json:"name" yaml:"-"`
	Transfer float64 `json:"transfer" yaml:"transfer"`
	Stairs   float64 `json:"stairs" yaml:"stairs"`
	Sidewalk float64 `json:"sidewalk" yaml:"sidewalk"`
	Flood    float64 `json:"flood" yaml:"flood"`
	// stairs and bad sidewalks are reported as barriers
	Accessible bool `json:"accessible" yaml:"accessible"`
}

func (self Profile) Params(rain bool) CostParams {
	return CostParams{
		Transfer: self.Transfer,
		Stairs:   self.Stairs,
		Sidewalk: self.Sidewalk,
		Flood:    self.Flood,
		Rain:     rain,
	}
}

func (self Profile) Validate() error {
	if self.Transfer < 0 || self.Stairs < 0 || self.Sidewalk < 0 || self.Flood < 0 {
		return errors.New("profile " + self.Name + " has a negative coefficient")
	}
	return nil
}

const (
	STANDARD_PROFILE   = "standard"
	ACCESSIBLE_PROFILE = "pcd"
)

func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		STANDARD_PROFILE: {
			Name:     STANDARD_PROFILE,
			Transfer: 6,
			Stairs:   2,
			Sidewalk: 1,
			Flood:    4,
		},
		ACCESSIBLE_PROFILE: {
			Name:       ACCESSIBLE_PROFILE,
			Transfer:   6,
			Stairs:     12,
			Sidewalk:   6,
			Flood:      4,
			Accessible: true,
		},
	}
}

// Returns the profile names in sorted order.
func ProfileNames(profiles map[string]Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

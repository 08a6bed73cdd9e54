package attr

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

//*******************************************
// travel mode
//*******************************************

type TravelMode byte

const (
	WALK  TravelMode = 0
	BUS   TravelMode = 1
	METRO TravelMode = 2
	TRAIN TravelMode = 3
)

func (self TravelMode) String() string {
	switch self {
	case WALK:
		return "walk"
	case BUS:
		return "bus"
	case METRO:
		return "metro"
	case TRAIN:
		return "train"
	}
	return ""
}

// Accepts the english names and the names used by the source tables
// ("pe", "onibus", "metro", "trem").
func TravelModeFromString(mode string) (TravelMode, error) {
	switch mode {
	case "walk", "pe":
		return WALK, nil
	case "bus", "onibus":
		return BUS, nil
	case "metro":
		return METRO, nil
	case "train", "trem":
		return TRAIN, nil
	}
	return WALK, errors.New("unknown travel mode: " + mode)
}

func (self TravelMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TravelMode) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err != nil {
		return err
	}
	typ, err := TravelModeFromString(mode)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}
func (self TravelMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TravelMode) UnmarshalYAML(value *yaml.Node) error {
	typ, err := TravelModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

//*******************************************
// hazard type
//*******************************************

// One of the four penalised edge attributes.
type HazardType byte

const (
	TRANSFER     HazardType = 0
	STAIRS       HazardType = 1
	BAD_SIDEWALK HazardType = 2
	FLOOD_RISK   HazardType = 3
)

var HAZARD_TYPES = [4]HazardType{TRANSFER, STAIRS, BAD_SIDEWALK, FLOOD_RISK}

func (self HazardType) String() string {
	switch self {
	case TRANSFER:
		return "transfer"
	case STAIRS:
		return "stairs"
	case BAD_SIDEWALK:
		return "bad_sidewalk"
	case FLOOD_RISK:
		return "flood"
	}
	return ""
}

func HazardTypeFromString(typ string) (HazardType, error) {
	switch typ {
	case "transfer", "transferencia":
		return TRANSFER, nil
	case "stairs", "escada":
		return STAIRS, nil
	case "bad_sidewalk", "calcada_ruim":
		return BAD_SIDEWALK, nil
	case "flood", "risco_alag":
		return FLOOD_RISK, nil
	}
	return TRANSFER, errors.New("unknown hazard type: " + typ)
}

func (self HazardType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *HazardType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	hazard, err := HazardTypeFromString(typ)
	if err != nil {
		return err
	}
	*self = hazard
	return nil
}
func (self HazardType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *HazardType) UnmarshalYAML(value *yaml.Node) error {
	hazard, err := HazardTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = hazard
	return nil
}

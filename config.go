package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/conneccity/access-routing/routing"
	"github.com/conneccity/access-routing/weighting"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// Decodes a yaml config, fills in defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	config := Config{
		Routing: RoutingOptions{
			MaxAlternatives: DEFAULT_MAX_ALTERNATIVES,
			MaxCandidates:   routing.DEFAULT_MAX_CANDIDATES,
		},
		Logging: LoggingOptions{
			Level: "info",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

const DEFAULT_MAX_ALTERNATIVES = 3

type Config struct {
	Graph    GraphOptions              `yaml:"graph"`
	Profiles map[string]ProfileOptions `yaml:"profiles"`
	Routing  RoutingOptions            `yaml:"routing"`
	Logging  LoggingOptions            `yaml:"logging"`
}

type GraphOptions struct {
	Nodes string `yaml:"nodes"`
	Edges string `yaml:"edges"`
	// used instead of the tables when set
	OSM string `yaml:"osm"`
}

type RoutingOptions struct {
	MaxAlternatives int `yaml:"max-alternatives"`
	MaxCandidates   int `yaml:"max-candidates"`
}

type LoggingOptions struct {
	Level string `yaml:"level"`
}

func (self Config) Validate() error {
	if self.Graph.OSM == "" && (self.Graph.Nodes == "" || self.Graph.Edges == "") {
		return errors.New("config needs either graph.osm or both graph.nodes and graph.edges")
	}
	if self.Routing.MaxAlternatives < 1 {
		return errors.New("routing.max-alternatives must be at least 1")
	}
	if self.Routing.MaxCandidates < 1 {
		return errors.New("routing.max-candidates must be at least 1")
	}
	if _, err := LogLevelFromString(self.Logging.Level); err != nil {
		return err
	}
	for _, profile := range self.GetProfiles() {
		if err := profile.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Returns the builtin profiles overridden and extended by the configured ones.
func (self Config) GetProfiles() map[string]weighting.Profile {
	profiles := weighting.DefaultProfiles()
	for name, options := range self.Profiles {
		profile, ok := profiles[name]
		if !ok {
			profile = weighting.Profile{Name: name}
		}
		profiles[name] = options.Apply(profile)
	}
	return profiles
}

//**********************************************************
// profile options
//**********************************************************

// Coefficients left out keep the value of the builtin profile.
type ProfileOptions struct {
	Transfer   *float64 `yaml:"transfer"`
	Stairs     *float64 `yaml:"stairs"`
	Sidewalk   *float64 `yaml:"sidewalk"`
	Flood      *float64 `yaml:"flood"`
	Accessible *bool    `yaml:"accessible"`
}

func (self ProfileOptions) Apply(profile weighting.Profile) weighting.Profile {
	if self.Transfer != nil {
		profile.Transfer = *self.Transfer
	}
	if self.Stairs != nil {
		profile.Stairs = *self.Stairs
	}
	if self.Sidewalk != nil {
		profile.Sidewalk = *self.Sidewalk
	}
	if self.Flood != nil {
		profile.Flood = *self.Flood
	}
	if self.Accessible != nil {
		profile.Accessible = *self.Accessible
	}
	return profile
}

//**********************************************************
// enums
//**********************************************************

func LogLevelFromString(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("unknown log level " + s)
	}
}

package main

import (
	"errors"
)

type RouteRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Profile string `json:"profile"`
	Rain    bool   `json:"rain"`
	// number of alternatives, clamped to [1, max-alternatives]
	Alternatives int `json:"alternatives"`
}

func (self RouteRequest) Validate() error {
	if self.From == "" || self.To == "" {
		return errors.New("both origin and destination are required")
	}
	return nil
}

type AdviceRequest struct {
	Profile    string `json:"profile"`
	Rain       bool   `json:"rain"`
	MaxResults int    `json:"max_results"`
}

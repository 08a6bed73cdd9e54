package main

import (
	"github.com/conneccity/access-routing/advisor"
	"github.com/conneccity/access-routing/parser"
	"github.com/conneccity/access-routing/routing"
)

type RouteResponse struct {
	Query   string                 `json:"query"`
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Profile string                 `json:"profile"`
	Rain    bool                   `json:"rain"`
	Found   bool                   `json:"found"`
	Routes  []routing.RouteDetails `json:"routes"`
}

type AdviceResponse struct {
	Query        string                `json:"query"`
	Profile      string                `json:"profile"`
	Rain         bool                  `json:"rain"`
	Improvements []advisor.Improvement `json:"improvements"`
}

type StatsResponse struct {
	Graph    parser.LoadStats   `json:"graph"`
	Profiles []string           `json:"profiles"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

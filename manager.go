package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/conneccity/access-routing/advisor"
	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	"github.com/conneccity/access-routing/parser"
	"github.com/conneccity/access-routing/routing"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

var ErrUnknownProfile = errors.New("unknown profile")
var ErrUnknownNode = errors.New("unknown node id")

// Loads the graph once and answers queries against it.
func NewRoutingManager(ctx context.Context, config Config, logger *slog.Logger, observer events.IObserver) (*RoutingManager, error) {
	observer = events.OrNoop(observer)
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	var g *graph.Graph
	var stats parser.LoadStats
	var err error
	if config.Graph.OSM != "" {
		logger.Info("parsing osm file", "file", config.Graph.OSM)
		g, stats, err = parser.ParseOSM(ctx, config.Graph.OSM, &parser.WalkingDecoder{}, observer)
	} else {
		logger.Info("loading graph tables", "nodes", config.Graph.Nodes, "edges", config.Graph.Edges)
		g, stats, err = parser.LoadGraph(config.Graph.Nodes, config.Graph.Edges, observer)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("graph loaded",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"skipped_rows", stats.SkippedNodeRows+stats.SkippedEdgeRows,
		"skipped_edges", stats.SkippedEdges,
		"duplicates", stats.DuplicateIDs,
		"took", time.Since(start),
	)

	return &RoutingManager{
		config:   config,
		graph:    g,
		stats:    stats,
		profiles: config.GetProfiles(),
		observer: observer,
		logger:   logger,
	}, nil
}

type RoutingManager struct {
	config   Config
	graph    *graph.Graph
	stats    parser.LoadStats
	profiles map[string]weighting.Profile
	observer events.IObserver
	logger   *slog.Logger
}

func (self *RoutingManager) GetGraph() *graph.Graph {
	return self.graph
}

func (self *RoutingManager) GetStats() parser.LoadStats {
	return self.stats
}

func (self *RoutingManager) GetProfile(profile string) Optional[weighting.Profile] {
	if p, ok := self.profiles[profile]; ok {
		return Some(p)
	}
	return None[weighting.Profile]()
}

func (self *RoutingManager) ProfileNames() []string {
	return weighting.ProfileNames(self.profiles)
}

// Clamps the requested number of alternatives to [1, max-alternatives].
func (self *RoutingManager) ClampAlternatives(k int) int {
	return _Clamp(k, 1, self.config.Routing.MaxAlternatives)
}

// Answers a route request.
//
// An unknown profile or node id is an error, an unreachable destination is a
// response with Found set to false.
func (self *RoutingManager) Route(request RouteRequest) (RouteResponse, error) {
	if err := request.Validate(); err != nil {
		return RouteResponse{}, err
	}
	profile_ := self.GetProfile(request.Profile)
	if !profile_.HasValue() {
		return RouteResponse{}, _Wrap(ErrUnknownProfile, request.Profile)
	}
	profile := profile_.Value
	source, ok := self.graph.Resolve(request.From)
	if !ok {
		return RouteResponse{}, _Wrap(ErrUnknownNode, request.From)
	}
	target, ok := self.graph.Resolve(request.To)
	if !ok {
		return RouteResponse{}, _Wrap(ErrUnknownNode, request.To)
	}

	query := uuid.New().String()
	logger := self.logger.With("query", query)
	k := self.ClampAlternatives(request.Alternatives)
	weight := weighting.NewCostWeighting(self.graph, profile.Params(request.Rain))

	var routes []routing.Route
	if k == 1 {
		d := routing.NewDijkstra(self.graph, weight, source, target)
		d.SetObserver(self.observer)
		if d.CalcShortestPath() {
			routes = []routing.Route{d.GetShortestPath()}
		}
	} else {
		yen := routing.NewYen(self.graph, weight, source, target, k, routing.YenOptions{
			MaxCandidates: self.config.Routing.MaxCandidates,
			Observer:      self.observer,
		})
		routes = yen.CalcRoutes()
	}

	response := RouteResponse{
		Query:   query,
		From:    request.From,
		To:      request.To,
		Profile: profile.Name,
		Rain:    request.Rain,
		Found:   len(routes) > 0,
		Routes:  make([]routing.RouteDetails, 0, len(routes)),
	}
	for _, route := range routes {
		response.Routes = append(response.Routes, routing.Describe(self.graph, route, profile, request.Rain))
	}
	logger.Info("route query", "from", request.From, "to", request.To, "profile", profile.Name, "k", k, "routes", len(routes))
	return response, nil
}

// Ranks hazard removals by their effect on all shortest routes of the graph.
func (self *RoutingManager) Advise(ctx context.Context, request AdviceRequest) (AdviceResponse, error) {
	profile_ := self.GetProfile(request.Profile)
	if !profile_.HasValue() {
		return AdviceResponse{}, _Wrap(ErrUnknownProfile, request.Profile)
	}
	profile := profile_.Value

	query := uuid.New().String()
	start := time.Now()
	improvements, err := advisor.AnalyzeEdgeImprovements(ctx, self.graph, profile.Params(request.Rain), advisor.Options{
		MaxResults: request.MaxResults,
	})
	if err != nil {
		return AdviceResponse{}, err
	}
	self.logger.Info("advice query", "query", query, "profile", profile.Name, "improvements", len(improvements), "took", time.Since(start))
	return AdviceResponse{
		Query:        query,
		Profile:      profile.Name,
		Rain:         request.Rain,
		Improvements: improvements,
	}, nil
}

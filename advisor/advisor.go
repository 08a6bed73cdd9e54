package advisor

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
	"github.com/conneccity/access-routing/routing"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

// improvements saving less than this are ignored
const DEFAULT_MIN_SAVINGS = 0.1

type ImpactLevel byte

const (
	LOW_IMPACT    ImpactLevel = 0
	MEDIUM_IMPACT ImpactLevel = 1
	HIGH_IMPACT   ImpactLevel = 2
)

func (self ImpactLevel) String() string {
	switch self {
	case LOW_IMPACT:
		return "low"
	case MEDIUM_IMPACT:
		return "medium"
	case HIGH_IMPACT:
		return "high"
	}
	return ""
}
func (self ImpactLevel) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}
func (self *ImpactLevel) UnmarshalText(data []byte) error {
	level, err := ImpactLevelFromString(string(data))
	*self = level
	return err
}

func ImpactLevelFromString(s string) (ImpactLevel, error) {
	switch s {
	case "low":
		return LOW_IMPACT, nil
	case "medium":
		return MEDIUM_IMPACT, nil
	case "high":
		return HIGH_IMPACT, nil
	default:
		return LOW_IMPACT, errors.New("unknown impact level " + s)
	}
}

func LevelFromScore(score float64) ImpactLevel {
	if score > 10 {
		return HIGH_IMPACT
	}
	if score > 5 {
		return MEDIUM_IMPACT
	}
	return LOW_IMPACT
}

// Suggested removal of one hazard from one edge.
type Improvement struct {
	EdgeID         int32           `json:"-"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Hazard         attr.HazardType `json:"hazard"`
	CurrentCost    float64         `json:"current_cost"`
	Savings        float64         `json:"potential_savings"`
	AffectedRoutes int             `json:"affected_routes"`
	Score          float64         `json:"impact_score"`
	Level          ImpactLevel     `json:"impact_level"`
	Priority       int             `json:"priority"`
}

type Options struct {
	// maximum number of returned improvements, <= 0 returns all
	MaxResults int
	// only savings strictly above are reported, 0 uses DEFAULT_MIN_SAVINGS
	MinSavings float64
	// number of concurrent searches, <= 0 uses GOMAXPROCS
	Workers int
}

//*******************************************
// improvement analysis
//*******************************************

// Cost saved on edge if hazard was removed, 0 if the edge does not carry it.
func ImprovementImpact(g graph.IGraph, edge int32, hazard attr.HazardType, params weighting.CostParams) float64 {
	attribs := g.GetEdge(edge).EdgeAttribs
	if !attribs.HasHazard(hazard) {
		return 0
	}
	current := weighting.NewCostWeighting(g, params).GetEdgeWeight(edge)
	potential := weighting.WithoutHazard(g, params, edge, hazard).GetEdgeWeight(edge)
	return current - potential
}

// Number of ordered node pairs whose shortest route steps from from to to.
func CountAffectedRoutes(ctx context.Context, g graph.IGraph, from, to int32, params weighting.CostParams, workers int) (int, error) {
	counts, err := CountAllAffectedRoutes(ctx, g, params, workers)
	if err != nil {
		return 0, err
	}
	return counts.Get(MakeTuple(from, to)), nil
}

// Counts for every hop (a, b) the ordered node pairs whose shortest route uses it.
//
// One shortest path tree is built per source, the route to every target
// follows the tree. Sources are processed by a pool of workers.
func CountAllAffectedRoutes(ctx context.Context, g graph.IGraph, params weighting.CostParams, workers int) (Dict[Tuple[int32, int32], int], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	weight := weighting.NewCostWeighting(g, params)

	source_chan := make(chan int32, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		source_chan <- int32(i)
	}
	close(source_chan)

	results := make([]Dict[Tuple[int32, int32], int], workers)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			counts := NewDict[Tuple[int32, int32], int](100)
			subtree := make([]int, g.NodeCount())
			for s := range source_chan {
				if ctx.Err() != nil {
					break
				}
				tree := routing.NewShortestPathTree(g, weight, s)
				tree.CalcShortestPathTree()
				_AccumulateTree(tree, subtree, counts)
			}
			results[w] = counts
		}(w)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := NewDict[Tuple[int32, int32], int](100)
	for _, counts := range results {
		for hop, count := range counts {
			total[hop] += count
		}
	}
	return total, nil
}

// Every settled node t adds the size of its subtree to the hop (pred(t), t).
func _AccumulateTree(tree *routing.ShortestPathTree, subtree []int, counts Dict[Tuple[int32, int32], int]) {
	order := tree.SettledNodes()
	for _, node := range order {
		subtree[node] = 1
	}
	for i := len(order) - 1; i > 0; i-- {
		node := order[i]
		prev := tree.GetPredecessor(node)
		subtree[prev] += subtree[node]
		counts[MakeTuple(prev, node)] += subtree[node]
	}
}

// Ranks hazard removals by savings times affected routes.
//
// Every hazard on every edge with savings above the threshold is a candidate.
// Ties keep edge order.
func AnalyzeEdgeImprovements(ctx context.Context, g graph.IGraph, params weighting.CostParams, options Options) ([]Improvement, error) {
	min_savings := options.MinSavings
	if min_savings == 0 {
		min_savings = DEFAULT_MIN_SAVINGS
	}
	weight := weighting.NewCostWeighting(g, params)

	improvements := make([]Improvement, 0)
	for i := 0; i < g.EdgeCount(); i++ {
		edge_id := int32(i)
		for _, hazard := range attr.HAZARD_TYPES {
			savings := ImprovementImpact(g, edge_id, hazard, params)
			if savings <= min_savings {
				continue
			}
			edge := g.GetEdge(edge_id)
			improvements = append(improvements, Improvement{
				EdgeID:      edge_id,
				From:        g.GetNode(edge.NodeA).ID,
				To:          g.GetNode(edge.NodeB).ID,
				Hazard:      hazard,
				CurrentCost: weight.GetEdgeWeight(edge_id),
				Savings:     savings,
			})
		}
	}
	if len(improvements) == 0 {
		return improvements, nil
	}

	counts, err := CountAllAffectedRoutes(ctx, g, params, options.Workers)
	if err != nil {
		return nil, err
	}
	for i := range improvements {
		imp := &improvements[i]
		edge := g.GetEdge(imp.EdgeID)
		imp.AffectedRoutes = counts.Get(MakeTuple(edge.NodeA, edge.NodeB))
		imp.Score = imp.Savings * float64(imp.AffectedRoutes)
		imp.Level = LevelFromScore(imp.Score)
	}

	sort.SliceStable(improvements, func(i, j int) bool {
		return improvements[i].Score > improvements[j].Score
	})
	if options.MaxResults > 0 && len(improvements) > options.MaxResults {
		improvements = improvements[:options.MaxResults]
	}
	for i := range improvements {
		improvements[i].Priority = i + 1
	}
	return improvements, nil
}

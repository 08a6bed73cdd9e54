package metrics

import (
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/conneccity/access-routing/events"
)

const NAMESPACE = "access_routing"

var _ events.IObserver = &Observer{}

// Observer exporting events as prometheus metrics.
type Observer struct {
	duplicate_ids    prometheus.Counter
	index_grows      prometheus.Counter
	index_capacity   prometheus.Gauge
	index_full       prometheus.Counter
	skipped_rows     *prometheus.CounterVec
	skipped_edges    *prometheus.CounterVec
	searches         *prometheus.CounterVec
	search_duration  *prometheus.HistogramVec
	search_visited   *prometheus.HistogramVec
	candidate_limits prometheus.Counter
	graph_nodes      prometheus.Gauge
	graph_edges      prometheus.Gauge
}

// Creates the metrics and registers them with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		duplicate_ids: factory.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "duplicate_ids_total",
			Help:      "Node identifiers inserted more than once",
		}),
		index_grows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "id_index_grows_total",
			Help:      "Growth steps of the identifier index",
		}),
		index_capacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: NAMESPACE,
			Name:      "id_index_capacity",
			Help:      "Slots of the identifier index",
		}),
		index_full: factory.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "id_index_full_total",
			Help:      "Identifiers not indexed because the growth bound was reached",
		}),
		skipped_rows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "skipped_rows_total",
			Help:      "Malformed table rows skipped while loading",
		}, []string{"table"}),
		skipped_edges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "skipped_edges_total",
			Help:      "Edges skipped because an endpoint did not resolve",
		}, []string{"missing"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "searches_total",
			Help:      "Finished searches",
		}, []string{"kind", "found"}),
		search_duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Name:      "search_duration_seconds",
			Help:      "Duration of searches in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"kind"}),
		search_visited: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Name:      "search_visited",
			Help:      "Settled nodes per shortest path search and spur searches per alternatives search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
		candidate_limits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "candidate_limit_total",
			Help:      "Alternative searches stopped by the candidate bound",
		}),
		graph_nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: NAMESPACE,
			Name:      "graph_nodes",
			Help:      "Nodes of the loaded graph",
		}),
		graph_edges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: NAMESPACE,
			Name:      "graph_edges",
			Help:      "Edges of the loaded graph",
		}),
	}
}

func (self *Observer) SetGraphSize(nodes, edges int) {
	self.graph_nodes.Set(float64(nodes))
	self.graph_edges.Set(float64(edges))
}

func (self *Observer) OnDuplicateID(id string, first int32) {
	self.duplicate_ids.Inc()
}
func (self *Observer) OnIndexGrow(capacity int) {
	self.index_grows.Inc()
	self.index_capacity.Set(float64(capacity))
}
func (self *Observer) OnIndexFull(id string) {
	self.index_full.Inc()
}
func (self *Observer) OnRowSkipped(table events.Table, line int, reason string) {
	self.skipped_rows.WithLabelValues(table.String()).Inc()
}
func (self *Observer) OnEdgeSkipped(from, to string, from_missing, to_missing bool) {
	missing := "both"
	if !to_missing {
		missing = "from"
	} else if !from_missing {
		missing = "to"
	}
	self.skipped_edges.WithLabelValues(missing).Inc()
}
func (self *Observer) OnSearch(event events.SearchEvent) {
	kind := event.Kind.String()
	found := "false"
	if event.Routes > 0 {
		found = "true"
	}
	self.searches.WithLabelValues(kind, found).Inc()
	self.search_duration.WithLabelValues(kind).Observe(event.Duration.Seconds())
	self.search_visited.WithLabelValues(kind).Observe(float64(event.Visited))
}
func (self *Observer) OnCandidateLimit(limit int) {
	self.candidate_limits.Inc()
}

//*******************************************
// export
//*******************************************

// Writes all metrics of gatherer in the prometheus text format.
func WriteText(writer io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(writer, family); err != nil {
			return err
		}
	}
	return nil
}

// Returns counter and gauge values keyed by name and labels, histograms report
// their sample count.
func Snapshot(gatherer prometheus.Gatherer) (map[string]float64, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}
	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName() + _LabelSuffix(metric.GetLabel())
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				values[key] = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				values[key] = metric.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				values[key+"_count"] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return values, nil
}

func _LabelSuffix(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(labels))
	for _, label := range labels {
		pairs = append(pairs, label.GetName()+"="+label.GetValue())
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ",") + "}"
}

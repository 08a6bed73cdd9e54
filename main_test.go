package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const test_nodes = `id,name,lat,lon,tipo
A,Terminal Norte,-23.50,-46.60,bus
B,Rua Alta,-23.51,-46.61,walk
C,Rua Baixa,-23.52,-46.62,walk
D,Hospital,-23.53,-46.63,walk
`

const test_edges = `from,to,tempo_min,transferencia,escada,calcada_ruim,risco_alag,modo
A,B,2,0,1,0,0,pe
B,D,2,0,0,0,0,pe
A,C,3.5,0,0,0,0,pe
C,D,3,0,0,0,0,pe
`

// Writes the test tables and a config referencing them, returns the config path.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.csv")
	edges := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(nodes, []byte(test_nodes), 0o644))
	require.NoError(t, os.WriteFile(edges, []byte(test_edges), 0o644))
	config := "graph:\n  nodes: " + nodes + "\n  edges: " + edges + "\nlogging:\n  level: warn\n" + extra
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(config), 0o644))
	return file
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunRoute(t *testing.T) {
	config := writeTestConfig(t, "")

	tests := []struct {
		name  string
		args  []string
		paths [][]string
		costs []float64
	}{
		{"standard", []string{"-from", "A", "-to", "D"}, [][]string{{"A", "B", "D"}}, []float64{6}},
		{"pcd", []string{"-from", "A", "-to", "D", "-profile", "pcd"}, [][]string{{"A", "C", "D"}}, []float64{6.5}},
		{"alternatives", []string{"-from", "A", "-to", "D", "-k", "5"}, [][]string{{"A", "B", "D"}, {"A", "C", "D"}}, []float64{6, 6.5}},
		{"k below one", []string{"-from", "A", "-to", "D", "-k", "0"}, [][]string{{"A", "B", "D"}}, []float64{6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, append([]string{"-config", config}, tt.args...)...)
			require.Equal(t, 0, code)

			var response RouteResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &response))
			assert.True(t, response.Found)
			assert.NotEmpty(t, response.Query)
			require.Len(t, response.Routes, len(tt.paths))
			for i, route := range response.Routes {
				assert.Equal(t, tt.paths[i], route.Path)
				assert.InDelta(t, tt.costs[i], route.Cost, 1e-9)
			}
		})
	}
}

func TestRunRouteNotFound(t *testing.T) {
	config := writeTestConfig(t, "")

	code, stdout, _ := runCLI(t, "-config", config, "-from", "D", "-to", "A")
	require.Equal(t, 0, code)
	var response RouteResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.False(t, response.Found)
	assert.Empty(t, response.Routes)
}

func TestRunErrors(t *testing.T) {
	config := writeTestConfig(t, "")

	code, stdout, _ := runCLI(t, "-config", config, "-from", "A", "-to", "Z")
	assert.Equal(t, 1, code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "route", response.Request)
	assert.Contains(t, response.Error, "unknown node id")

	code, stdout, _ = runCLI(t, "-config", config, "-from", "A", "-to", "D", "-profile", "bike")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "unknown profile")

	code, _, stderr := runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read config file")

	code, _, _ = runCLI(t, "-unknown-flag")
	assert.Equal(t, 2, code)
}

func TestRunAdvise(t *testing.T) {
	config := writeTestConfig(t, "")

	code, stdout, _ := runCLI(t, "-config", config, "-advise")
	require.Equal(t, 0, code)
	var response AdviceResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.Len(t, response.Improvements, 1)
	imp := response.Improvements[0]
	assert.Equal(t, "A", imp.From)
	assert.Equal(t, "B", imp.To)
	assert.InDelta(t, 2.0, imp.Savings, 1e-9)
	assert.Equal(t, 2, imp.AffectedRoutes)
	assert.Equal(t, 1, imp.Priority)

	code, stdout, _ = runCLI(t, "-config", config, "-advise", "-profile", "pcd")
	require.Equal(t, 0, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.Len(t, response.Improvements, 1)
	assert.Equal(t, 1, response.Improvements[0].AffectedRoutes)
	assert.InDelta(t, 12.0, response.Improvements[0].Score, 1e-9)
	assert.Contains(t, stdout, `"impact_level": "high"`)
}

func TestRunStatsAndMetrics(t *testing.T) {
	config := writeTestConfig(t, "profiles:\n  night: {transfer: 10}\n")
	metrics_file := filepath.Join(t.TempDir(), "metrics.txt")

	code, stdout, _ := runCLI(t, "-config", config, "-metrics", metrics_file)
	require.Equal(t, 0, code)
	var response StatsResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, 4, response.Graph.Nodes)
	assert.Equal(t, 4, response.Graph.Edges)
	assert.Equal(t, []string{"night", "pcd", "standard"}, response.Profiles)
	assert.Equal(t, 4.0, response.Metrics["access_routing_graph_nodes"])

	data, err := os.ReadFile(metrics_file)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "access_routing_graph_edges 4"))
}

func TestRunMetricsCountSearches(t *testing.T) {
	config := writeTestConfig(t, "")

	code, _, stderr := runCLI(t, "-config", config, "-from", "A", "-to", "D", "-metrics", "-")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, `access_routing_searches_total{found="true",kind="dijkstra"} 1`)
}

func TestRunOutputFile(t *testing.T) {
	config := writeTestConfig(t, "")
	output := filepath.Join(t.TempDir(), "route.json")

	code, stdout, _ := runCLI(t, "-config", config, "-from", "A", "-to", "D", "-output", output)
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var response RouteResponse
	require.NoError(t, json.Unmarshal(data, &response))
	require.Len(t, response.Routes, 1)
	assert.Equal(t, []string{"A", "B", "D"}, response.Routes[0].Path)

	code, _, _ = runCLI(t, "-config", config, "-from", "A", "-to", "D", "-output", filepath.Join(t.TempDir(), "missing", "route.json"))
	assert.Equal(t, 1, code)
}

func TestRunRejectsLogLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("graph:\n  osm: city.osm.pbf\nlogging:\n  level: loud\n"), 0o644))

	code, stdout, stderr := runCLI(t, "-config", file)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown log level loud")
}

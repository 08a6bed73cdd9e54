package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/metrics"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	config      string
	from        string
	to          string
	profile     string
	rain        bool
	k           int
	advise      bool
	max_results int
	output      string
	metrics     string
}

func _ParseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("access-routing", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "./config.yaml", "path to the config file")
	fs.StringVar(&opts.from, "from", "", "origin node id")
	fs.StringVar(&opts.to, "to", "", "destination node id")
	fs.StringVar(&opts.profile, "profile", weighting.STANDARD_PROFILE, "cost profile")
	fs.BoolVar(&opts.rain, "rain", false, "apply the flood penalty")
	fs.IntVar(&opts.k, "k", 1, "number of alternative routes")
	fs.BoolVar(&opts.advise, "advise", false, "rank hazard removals instead of routing")
	fs.IntVar(&opts.max_results, "max-results", 10, "maximum number of ranked improvements")
	fs.StringVar(&opts.output, "output", "", "write the json result to this file instead of stdout")
	fs.StringVar(&opts.metrics, "metrics", "", "write metrics in text format to this file, - for stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// Runs one invocation and returns the exit code.
//
// Results are written as json to stdout or the -output file, logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := _ParseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	config, err := ReadConfig(opts.config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level, err := LogLevelFromString(config.Logging.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := NewLogger(stderr, level)

	registry := prometheus.NewRegistry()
	metric_observer := metrics.NewObserver(registry)
	observer := events.Multi{events.NewLogObserver(logger), metric_observer}

	manager, err := NewRoutingManager(ctx, config, logger, observer)
	if err != nil {
		logger.Error("failed to load graph", "error", err.Error())
		return 1
	}
	metric_observer.SetGraphSize(manager.GetGraph().NodeCount(), manager.GetGraph().EdgeCount())

	var result any
	switch {
	case opts.advise:
		result, err = manager.Advise(ctx, AdviceRequest{
			Profile:    opts.profile,
			Rain:       opts.rain,
			MaxResults: opts.max_results,
		})
	case opts.from != "" || opts.to != "":
		result, err = manager.Route(RouteRequest{
			From:         opts.from,
			To:           opts.to,
			Profile:      opts.profile,
			Rain:         opts.rain,
			Alternatives: opts.k,
		})
	default:
		snapshot, _ := metrics.Snapshot(registry)
		result = StatsResponse{
			Graph:    manager.GetStats(),
			Profiles: manager.ProfileNames(),
			Metrics:  snapshot,
		}
	}
	code := 0
	if err != nil {
		logger.Error("query failed", "error", err.Error())
		result = NewErrorResponse(_RequestName(opts), err.Error())
		code = 1
	}
	if err := _WriteResult(opts.output, result, stdout); err != nil {
		logger.Error("failed to write result", "error", err.Error())
		return 1
	}

	if opts.metrics != "" {
		if err := _WriteMetrics(opts.metrics, registry, stderr); err != nil {
			logger.Error("failed to write metrics", "error", err.Error())
			return 1
		}
	}
	return code
}

func _RequestName(opts options) string {
	if opts.advise {
		return "advise"
	}
	return "route"
}

func _WriteResult(file string, result any, stdout io.Writer) error {
	if file == "" {
		return WriteJSON(stdout, result)
	}
	return WriteJSONToFile(result, file)
}

func _WriteMetrics(file string, gatherer prometheus.Gatherer, stderr io.Writer) error {
	if file == "-" {
		return metrics.WriteText(stderr, gatherer)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return metrics.WriteText(f, gatherer)
}

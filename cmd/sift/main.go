package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/wizenheimer/sift"
	"github.com/wizenheimer/sift/internal/config"
	"github.com/wizenheimer/sift/internal/corpus"
)

var (
	appName = "sift"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "index JSON-lines documents in memory and run ranked keyword queries"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			EnvVar: "SIFT_CONFIG",
			Usage:  "Path to a YAML configuration file",
		},
		cli.StringSliceFlag{
			Name:   "docs",
			EnvVar: "SIFT_DOCS",
			Usage:  "JSON-lines corpus file with {\"text\": ..., \"metadata\": {...}} per line (repeatable)",
		},
		cli.StringSliceFlag{
			Name:  "query",
			Usage: "Query to run against the corpus (repeatable)",
		},
		cli.IntFlag{
			Name:   "limit",
			EnvVar: "SIFT_LIMIT",
			Usage:  "Maximum results per query (overrides config)",
		},
		cli.Float64Flag{
			Name:   "threshold",
			EnvVar: "SIFT_THRESHOLD",
			Usage:  "Minimum score of returned results (overrides config)",
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "Write engine metrics in Prometheus text format to stderr on exit",
		},
		cli.StringFlag{
			Name:   "log-level",
			EnvVar: "SIFT_LOG_LEVEL",
			Usage:  "Log level (overrides config)",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	ctx, cancelFn := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelFn()

	cfg, err := config.Load(appCtx.String("config"))
	if err != nil {
		return err
	}
	if level := appCtx.String("log-level"); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger = cfg.NewLogger().WithFields(logger.Data)

	registry := prometheus.NewRegistry()
	metrics := sift.NewMetrics(registry)
	engine := sift.New(append(cfg.EngineOptions(),
		sift.WithLogger(logger),
		sift.WithMetrics(metrics),
	)...)

	records, err := corpus.LoadFiles(appCtx.StringSlice("docs")...)
	if err != nil {
		// keep going with whatever decoded
		logger.WithField("err", err).Warn("corpus contained unreadable entries")
	}
	corpus.IndexInto(engine, records)
	stats := engine.Stats()
	logger.WithFields(logrus.Fields{
		"documents":   stats.Documents,
		"terms":       stats.Terms,
		"filter_kind": engine.FilterKind(),
	}).Info("corpus indexed")

	searchOpts := cfg.SearchOptions()
	if appCtx.IsSet("limit") {
		searchOpts = append(searchOpts, sift.Limit(appCtx.Int("limit")))
	}
	if appCtx.IsSet("threshold") {
		searchOpts = append(searchOpts, sift.Threshold(appCtx.Float64("threshold")))
	}

	queries := appCtx.StringSlice("query")
	results, err := engine.SearchBatch(ctx, queries, searchOpts...)
	if err != nil {
		return err
	}
	for i, query := range queries {
		printResults(appCtx.App.Writer, query, results[i])
	}

	if appCtx.Bool("metrics") {
		return dumpMetrics(appCtx.App.ErrWriter, registry)
	}
	return nil
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func printResults(w io.Writer, query string, results []sift.Result) {
	fmt.Fprintf(w, "%q: %d result(s)\n", query, len(results))
	for rank, r := range results {
		fmt.Fprintf(w, "  %2d. [%d] %.6f  %s\n", rank+1, r.Document.ID, r.Score, r.Document.Text)
	}
}

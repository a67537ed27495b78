// Command loadgen runs a mixed read/write workload against the API gateway and prints a
// per-request summary at the end.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/config"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/loadtest"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := &cli.Command{
		Name:  "loadgen",
		Usage: "Generate load against the ecommerce API gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "gateway-url",
				Usage:   "base URL of the API gateway",
				Value:   config.DefaultGatewayBaseURL,
				Sources: cli.EnvVars(config.EnvGatewayBaseURL),
			},
			&cli.IntFlag{
				Name:    "request-timeout",
				Usage:   "timeout of each HTTP request, in seconds",
				Value:   config.DefaultRequestTimeoutSeconds,
				Sources: cli.EnvVars(config.EnvRequestTimeout),
			},
			&cli.IntFlag{
				Name:    "users",
				Aliases: []string{"u"},
				Usage:   "number of concurrent virtual users",
				Value:   config.DefaultLoadUsers,
				Sources: cli.EnvVars(config.EnvLoadUsers),
			},
			&cli.FloatFlag{
				Name:    "spawn-rate",
				Aliases: []string{"r"},
				Usage:   "virtual users started per second",
				Value:   config.DefaultLoadSpawnRate,
				Sources: cli.EnvVars(config.EnvLoadSpawnRate),
			},
			&cli.IntFlag{
				Name:    "run-time",
				Usage:   "length of the run, in seconds",
				Value:   config.DefaultLoadRunTimeSeconds,
				Sources: cli.EnvVars(config.EnvLoadRunTime),
			},
			&cli.IntFlag{
				Name:    "category-id",
				Usage:   "category of the products created by the workload",
				Value:   config.DefaultLoadCategoryID,
				Sources: cli.EnvVars(config.EnvLoadCategoryID),
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "address to serve Prometheus metrics on while running, e.g. :9100",
				Sources: cli.EnvVars(config.EnvLoadMetricsAddress),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: runLoad,
	}
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func runLoad(ctx context.Context, command *cli.Command) error {
	level, err := log.ParseLevel(command.String("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	runID := fmt.Sprintf("load-%s", uuid.New().String()[:8])
	logger := log.WithFields(log.Fields{
		"module": "loadgen",
		"run_id": runID,
	})

	cfg := config.Default()
	cfg.GatewayBaseURL = command.String("gateway-url")
	cfg.RequestTimeout = config.Seconds(command.Int("request-timeout"))
	if err := cfg.Validate(); err != nil {
		return err
	}

	options := loadtest.Options{
		Users:      int(command.Int("users")),
		SpawnRate:  command.Float("spawn-rate"),
		RunTime:    config.Seconds(command.Int("run-time")),
		MinWait:    loadtest.DefaultMinWait,
		MaxWait:    loadtest.DefaultMaxWait,
		CategoryID: int(command.Int("category-id")),
	}

	metrics := loadtest.NewMetrics()
	metrics.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpClient := &http.Client{}
	defer httpClient.CloseIdleConnections()
	client := gateway.NewClient(cfg, httpClient)
	workload := loadtest.DefaultWorkload()
	engine, err := loadtest.NewEngine(client, workload, metrics, options, logger)
	if err != nil {
		return fmt.Errorf("invalid load options: %w", err)
	}
	for _, task := range workload.Tasks() {
		logger.WithFields(log.Fields{
			"task":   task.Name,
			"weight": task.Weight,
			"share":  fmt.Sprintf("%.0f%%", 100*float64(task.Weight)/float64(workload.TotalWeight())),
		}).Debug("Workload task")
	}

	if addr := command.String("metrics-addr"); addr != "" {
		server := &http.Server{Addr: addr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
		defer server.Close()
		logger.WithField("addr", addr).Info("Serving metrics")
	}

	logger.WithFields(log.Fields{
		"gateway":    cfg.GatewayBaseURL,
		"users":      options.Users,
		"spawn_rate": options.SpawnRate,
		"run_time":   options.RunTime,
	}).Info("Starting load run")

	runErr := engine.Run(ctx)
	printSummary(metrics.Summary())
	if runErr != nil {
		logger.WithError(runErr).Warn("Load run interrupted")
		return runErr
	}
	logger.Info("Load run finished")
	return nil
}

func printSummary(summary []loadtest.RequestSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREQUESTS\tFAILURES\tAVG MS\tP50 MS\tP95 MS\tMAX MS")
	for _, s := range summary {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.1f\n",
			s.Name, s.Count, s.Failures, s.AvgMs, s.P50Ms, s.P95Ms, s.MaxMs)
	}
	_ = w.Flush()
}

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/config"
	"github.com/selimhorri/ecommerce-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/urfave/cli/v3"
)

type commandParams struct {
	config   config.Config
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
}

func commandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "gateway-url",
			Usage:   "base URL of the API gateway",
			Value:   config.DefaultGatewayBaseURL,
			Sources: cli.EnvVars(config.EnvGatewayBaseURL),
		},
		&cli.StringFlag{
			Name:    "registry-url",
			Usage:   "base URL of the service registry",
			Value:   config.DefaultRegistryBaseURL,
			Sources: cli.EnvVars(config.EnvRegistryBaseURL),
		},
		&cli.IntFlag{
			Name:    "request-timeout",
			Usage:   "timeout of each HTTP request, in seconds",
			Value:   config.DefaultRequestTimeoutSeconds,
			Sources: cli.EnvVars(config.EnvRequestTimeout),
		},
		&cli.IntFlag{
			Name:    "readiness-timeout",
			Usage:   "how long a test waits for a route to become ready, in seconds",
			Value:   config.DefaultReadinessTimeoutSeconds,
			Sources: cli.EnvVars(config.EnvReadinessTimeout),
		},
		&cli.IntFlag{
			Name:    "topology-timeout",
			Usage:   "how long to wait for each registry entry and gateway route before running tests, in seconds",
			Value:   config.DefaultTopologyTimeoutSeconds,
			Sources: cli.EnvVars(config.EnvTopologyTimeout),
		},
		&cli.IntFlag{
			Name:    "poll-interval",
			Usage:   "delay between readiness attempts, in seconds",
			Value:   config.DefaultPollIntervalSeconds,
			Sources: cli.EnvVars(config.EnvPollInterval),
		},
		&cli.StringSliceFlag{
			Name:  "run",
			Usage: "regex pattern(s) to select tests to run",
		},
		&cli.StringSliceFlag{
			Name:  "skip",
			Usage: "regex pattern(s) to select tests not to run",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging for failed tests",
		},
		&cli.BoolFlag{
			Name:  "debug-all",
			Usage: "enable debug logging for all tests",
		},
	}
}

func readParams(command *cli.Command) (commandParams, error) {
	p := commandParams{
		config: config.Config{
			GatewayBaseURL:   command.String("gateway-url"),
			RegistryBaseURL:  command.String("registry-url"),
			RequestTimeout:   config.Seconds(command.Int("request-timeout")),
			ReadinessTimeout: config.Seconds(command.Int("readiness-timeout")),
			TopologyTimeout:  config.Seconds(command.Int("topology-timeout")),
			PollInterval:     config.Seconds(command.Int("poll-interval")),
		},
		debug:    command.Bool("debug"),
		debugAll: command.Bool("debug-all"),
	}
	if err := p.config.Validate(); err != nil {
		return p, err
	}
	if err := p.filters.MustMatch.SetAll(command.StringSlice("run")); err != nil {
		return p, fmt.Errorf("invalid --run pattern: %w", err)
	}
	if err := p.filters.MustNotMatch.SetAll(command.StringSlice("skip")); err != nil {
		return p, fmt.Errorf("invalid --skip pattern: %w", err)
	}
	return p, nil
}

// reproduceCommand returns a command line that runs the same tests with the same settings,
// whatever part of them came from the environment.
func (p commandParams) reproduceCommand(program string) string {
	var b commandBuilder
	b.add(program)
	b.add("--gateway-url", p.config.GatewayBaseURL)
	b.add("--registry-url", p.config.RegistryBaseURL)
	b.add("--request-timeout", seconds(p.config.RequestTimeout))
	b.add("--readiness-timeout", seconds(p.config.ReadinessTimeout))
	b.add("--topology-timeout", seconds(p.config.TopologyTimeout))
	b.add("--poll-interval", seconds(p.config.PollInterval))
	for _, pattern := range p.filters.MustMatch.Patterns() {
		b.add("--run", pattern)
	}
	for _, pattern := range p.filters.MustNotMatch.Patterns() {
		b.add("--skip", pattern)
	}
	if p.debugAll {
		b.add("--debug-all")
	} else if p.debug {
		b.add("--debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func seconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

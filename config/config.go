// Package config holds the settings that every part of the test harness is built from.
//
// A Config is resolved once at startup, usually from command-line flags whose values can also
// come from the environment variables named below, and is then passed by value to the
// components that need it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables that can supply configuration values.
const (
	EnvGatewayBaseURL     = "API_GATEWAY_BASE_URL"
	EnvRegistryBaseURL    = "EUREKA_BASE_URL"
	EnvRequestTimeout     = "API_GATEWAY_TIMEOUT_SECONDS"
	EnvReadinessTimeout   = "API_GATEWAY_READINESS_TIMEOUT_SECONDS"
	EnvTopologyTimeout    = "TOPOLOGY_READINESS_TIMEOUT_SECONDS"
	EnvPollInterval       = "READINESS_POLL_INTERVAL_SECONDS"
	EnvLoadCategoryID     = "LOADGEN_CATEGORY_ID"
	EnvLoadUsers          = "LOADGEN_USERS"
	EnvLoadSpawnRate      = "LOADGEN_SPAWN_RATE"
	EnvLoadRunTime        = "LOADGEN_RUN_TIME_SECONDS"
	EnvLoadMetricsAddress = "LOADGEN_METRICS_ADDR"
)

// Defaults used when neither a flag nor an environment variable is set.
const (
	DefaultGatewayBaseURL   = "http://localhost:8080"
	DefaultRegistryBaseURL  = "http://localhost:8761"
	DefaultRequestTimeout   = DefaultRequestTimeoutSeconds * time.Second
	DefaultReadinessTimeout = DefaultReadinessTimeoutSeconds * time.Second
	DefaultTopologyTimeout  = DefaultTopologyTimeoutSeconds * time.Second
	DefaultPollInterval     = DefaultPollIntervalSeconds * time.Second
)

// The same defaults in whole seconds, as they are written in the environment.
const (
	DefaultRequestTimeoutSeconds   = 15
	DefaultReadinessTimeoutSeconds = 60
	DefaultTopologyTimeoutSeconds  = 300
	DefaultPollIntervalSeconds     = 2
)

// Defaults of the load generator.
const (
	DefaultLoadUsers          = 50
	DefaultLoadSpawnRate      = 5.0
	DefaultLoadRunTimeSeconds = 300
	DefaultLoadCategoryID     = 1
)

// Config describes where the system under test lives and how long to wait for it.
type Config struct {
	// GatewayBaseURL is the base URL of the API gateway.
	GatewayBaseURL string `validate:"required,url"`

	// RegistryBaseURL is the base URL of the service registry.
	RegistryBaseURL string `validate:"required,url"`

	// RequestTimeout bounds every single HTTP request.
	RequestTimeout time.Duration `validate:"gt=0"`

	// ReadinessTimeout is the default deadline of a wait-for call made by a test.
	ReadinessTimeout time.Duration `validate:"gt=0"`

	// TopologyTimeout is the deadline of each individual wait made by the topology gate.
	TopologyTimeout time.Duration `validate:"gt=0"`

	// PollInterval is the delay between two readiness attempts.
	PollInterval time.Duration `validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a Config with every field set to its documented default.
func Default() Config {
	return Config{
		GatewayBaseURL:   DefaultGatewayBaseURL,
		RegistryBaseURL:  DefaultRegistryBaseURL,
		RequestTimeout:   DefaultRequestTimeout,
		ReadinessTimeout: DefaultReadinessTimeout,
		TopologyTimeout:  DefaultTopologyTimeout,
		PollInterval:     DefaultPollInterval,
	}
}

// Validate reports the first problem found in the configuration, if any.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Seconds converts a whole number of seconds, as found in the environment, to a duration.
func Seconds[N int | int64](n N) time.Duration {
	return time.Duration(n) * time.Second
}

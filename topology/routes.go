package topology

import (
	"net/http"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/probe"
	"github.com/selimhorri/ecommerce-contract-tests/readiness"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultRoutes returns the gateway targets a session waits for: the gateway's own health
// route, which must report UP within the client's readiness timeout, and then every core
// listing route, each allowed routeTimeout.
func DefaultRoutes(client *gateway.Client, routeTimeout time.Duration) ([]readiness.Target, error) {
	health, err := client.Target(http.MethodGet, servicedef.GatewayHealthPath, gateway.WithCondition(HealthIsUp))
	if err != nil {
		return nil, err
	}
	health.Description = "gateway health"
	routes := []readiness.Target{health}
	for _, path := range servicedef.CoreListingRoutes {
		target, err := client.Target(http.MethodGet, path, gateway.WithTimeout(routeTimeout))
		if err != nil {
			return nil, err
		}
		routes = append(routes, target)
	}
	return routes, nil
}

// HealthIsUp reports whether a response body is a health document with status UP.
func HealthIsUp(o probe.Outcome) bool {
	return IsUp(ldvalue.Parse(o.Body))
}

// IsUp reports whether a parsed health document has status UP.
func IsUp(health ldvalue.Value) bool {
	return health.GetByKey("status").StringValue() == servicedef.StatusUp
}

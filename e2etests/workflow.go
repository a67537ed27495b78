package e2etests

import (
	"context"
	"fmt"
	"net/http"

	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"
	"github.com/selimhorri/ecommerce-contract-tests/workflow"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// Workflow is the test's view of a workflow scope.
type Workflow struct {
	t     *T
	scope *workflow.Scope
}

// Workflow runs body and then deletes, newest first, every resource body recorded. The
// deletions happen even if body fails the test; their failures only show up in the test's
// debug output.
func (t *T) Workflow(body func(*Workflow)) {
	compensator := gatewayCompensator{client: t.client}
	workflow.Run(t.env.ctx, compensator, t.logCompensation, func(s *workflow.Scope) {
		defer func() {
			outcome := "finished"
			if t.context.Failed() {
				outcome = "failed"
			}
			t.Debug("Workflow %s, deleting %d resource(s)", outcome, len(s.Handles()))
		}()
		body(&Workflow{t: t, scope: s})
	})
}

// Record remembers a created resource so it will be deleted. The test fails immediately if
// any identifier is missing.
func (w *Workflow) Record(kind workflow.Kind, ids ...ldvalue.Value) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, servicedef.IDString(id))
	}
	require.NoError(w.t, w.scope.Record(kind, keys...))
	w.t.Debug("Recorded %s", workflow.Handle{Kind: kind, Key: keys})
}

func (t *T) logCompensation(h workflow.Handle, err error) {
	logger := framework.WithPrefix(t.context.DebugLogger(), "[cleanup] ")
	if err != nil {
		logger.Printf("Cleanup failed, ignoring: %s", err)
		return
	}
	logger.Printf("Deleted %s", h)
}

// gatewayCompensator deletes resources through the gateway.
type gatewayCompensator struct {
	client *gateway.Client
}

func (c gatewayCompensator) Compensate(ctx context.Context, h workflow.Handle) error {
	path, err := compensationPath(h)
	if err != nil {
		return err
	}
	_, err = c.client.Do(ctx, http.MethodDelete, path, gateway.WithAnyStatus())
	return err
}

func compensationPath(h workflow.Handle) (string, error) {
	var collection string
	switch h.Kind {
	case workflow.User:
		collection = servicedef.UsersPath
	case workflow.Cart:
		collection = servicedef.CartsPath
	case workflow.Category:
		collection = servicedef.CategoriesPath
	case workflow.Product:
		collection = servicedef.ProductsPath
	case workflow.Order:
		collection = servicedef.OrdersPath
	case workflow.ShippingItem:
		collection = servicedef.ShippingsPath
	case workflow.Payment:
		collection = servicedef.PaymentsPath
	default:
		return "", fmt.Errorf("no delete route for %s", h.Kind)
	}
	return servicedef.ItemPath(collection, h.Key...), nil
}

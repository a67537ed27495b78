package e2etests

import (
	"net/http"

	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoHealthTests(t *T) {
	t.Run("gateway reports UP", func(t *T) {
		resp := t.Request(http.MethodGet, servicedef.GatewayHealthPath)
		require.NoError(t, servicedef.ValidateHealth(resp.Body))
		health, err := resp.JSON()
		require.NoError(t, err)
		assert.Equal(t, servicedef.StatusUp, health.GetByKey("status").StringValue())
	})
}

package e2etests

import (
	"strings"

	"github.com/selimhorri/ecommerce-contract-tests/probe"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// newSuffix returns 8 random hex characters for making names unique across runs.
func newSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// requireID returns doc[field], failing the test if it is missing or empty.
func requireID(t *T, doc ldvalue.Value, field string) ldvalue.Value {
	id := doc.GetByKey(field)
	if servicedef.IDString(id) == "" {
		require.Fail(t, "response did not include "+field, "body: %s", probe.Excerpt([]byte(doc.JSONString())))
	}
	return id
}

// refID returns doc[ref][field], as in {"category": {"categoryId": 1}}.
func refID(doc ldvalue.Value, ref, field string) ldvalue.Value {
	return doc.GetByKey(ref).GetByKey(field)
}

func itemPath(collection string, ids ...ldvalue.Value) string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, servicedef.IDString(id))
	}
	return servicedef.ItemPath(collection, keys...)
}

func anyItem(items []ldvalue.Value, match func(ldvalue.Value) bool) bool {
	for _, item := range items {
		if match(item) {
			return true
		}
	}
	return false
}

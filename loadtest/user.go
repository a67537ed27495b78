package loadtest

import (
	"context"
	"net/http"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// User is one virtual user. Its product payload is built once when it starts; users share no
// mutable state other than the Recorder.
type User struct {
	ID       int
	client   *gateway.Client
	recorder Recorder
	payload  servicedef.ProductParams
}

// NewUser creates a user whose products are placed in categoryID.
func NewUser(id int, client *gateway.Client, recorder Recorder, categoryID int) *User {
	return &User{
		ID:       id,
		client:   client,
		recorder: recorder,
		payload:  productPayload(categoryID),
	}
}

func productPayload(categoryID int) servicedef.ProductParams {
	return servicedef.ProductParams{
		ProductTitle: "Load Test Product",
		ImageURL:     "http://example.com/loadgen.png",
		SKU:          "LOADGEN-SKU",
		PriceUnit:    99.99,
		Quantity:     10,
		Category:     servicedef.CategoryRef{CategoryID: ldvalue.Int(categoryID)},
	}
}

// Payload returns the product this user creates.
func (u *User) Payload() servicedef.ProductParams {
	return u.payload
}

func (u *User) ListProducts(ctx context.Context) {
	u.do(ctx, ListProductsRequest, http.MethodGet, servicedef.ProductsPath)
}

func (u *User) ListCategories(ctx context.Context) {
	u.do(ctx, ListCategoriesRequest, http.MethodGet, servicedef.CategoriesPath)
}

// CreateThenDeleteProduct creates a product and deletes it again. The delete is skipped if
// creation did not succeed or did not return a productId.
func (u *User) CreateThenDeleteProduct(ctx context.Context) {
	resp, err := u.do(ctx, CreateProductRequest, http.MethodPost, servicedef.ProductsPath, gateway.WithJSONBody(u.payload))
	if err != nil || resp == nil || resp.Status >= 300 {
		return
	}
	doc, err := resp.JSON()
	if err != nil {
		return
	}
	id := servicedef.IDString(doc.GetByKey(servicedef.ProductIDField))
	if id == "" {
		return
	}
	u.do(ctx, DeleteProductRequest, http.MethodDelete, servicedef.ItemPath(servicedef.ProductsPath, id))
}

func (u *User) do(ctx context.Context, name, method, path string, opts ...gateway.Option) (*gateway.Response, error) {
	start := time.Now()
	resp, err := u.client.Do(ctx, method, path, append(opts, gateway.WithAnyStatus())...)
	if ctx.Err() != nil {
		// the run is over; an interrupted request says nothing about the gateway
		return resp, err
	}
	status := 0
	if resp != nil {
		status = resp.Status
	}
	u.recorder.Record(name, status, time.Since(start))
	return resp, err
}

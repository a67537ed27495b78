package e2etests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/selimhorri/ecommerce-contract-tests/servicedef"
)

type fakeCollection struct {
	path    string
	idField string
	items   map[string]map[string]interface{}
	order   []string
}

// fakeGateway is an in-memory stand-in for the ecommerce gateway and the services behind it.
type fakeGateway struct {
	lock        sync.Mutex
	nextID      int
	health      string
	collections []*fakeCollection
	faults      map[string]int  // "METHOD /path" prefix -> status to return instead
	omitIDs     map[string]bool // collection path -> POST responses leave out the id
	deleted     []string
}

func newFakeGateway() *fakeGateway {
	g := &fakeGateway{
		nextID:  1,
		health:  servicedef.StatusUp,
		faults:  make(map[string]int),
		omitIDs: make(map[string]bool),
	}
	for _, c := range []struct{ path, idField string }{
		{servicedef.ProductsPath, servicedef.ProductIDField},
		{servicedef.CategoriesPath, servicedef.CategoryIDField},
		{servicedef.UsersPath, servicedef.UserIDField},
		{servicedef.CartsPath, servicedef.CartIDField},
		{servicedef.OrdersPath, servicedef.OrderIDField},
		{servicedef.PaymentsPath, servicedef.PaymentIDField},
		{servicedef.ShippingsPath, ""},
	} {
		g.collections = append(g.collections, &fakeCollection{
			path:    c.path,
			idField: c.idField,
			items:   make(map[string]map[string]interface{}),
		})
	}
	return g
}

func (g *fakeGateway) fail(method, pathPrefix string, status int) {
	g.lock.Lock()
	g.faults[method+" "+pathPrefix] = status
	g.lock.Unlock()
}

func (g *fakeGateway) omitID(collectionPath string) {
	g.lock.Lock()
	g.omitIDs[collectionPath] = true
	g.lock.Unlock()
}

func (g *fakeGateway) deletedPaths() []string {
	g.lock.Lock()
	defer g.lock.Unlock()
	return append([]string(nil), g.deleted...)
}

func (g *fakeGateway) count(collectionPath string) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	for _, c := range g.collections {
		if c.path == collectionPath {
			return len(c.items)
		}
	}
	return 0
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.lock.Lock()
	defer g.lock.Unlock()

	for prefix, status := range g.faults {
		if strings.HasPrefix(r.Method+" "+r.URL.Path, prefix) {
			writeJSON(w, status, map[string]interface{}{"error": "injected failure"})
			return
		}
	}

	if r.URL.Path == servicedef.GatewayHealthPath {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": g.health})
		return
	}
	for _, c := range g.collections {
		if r.URL.Path == c.path || strings.HasPrefix(r.URL.Path, c.path+"/") {
			g.serveCollection(w, r, c, strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, c.path), "/"))
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (g *fakeGateway) serveCollection(w http.ResponseWriter, r *http.Request, c *fakeCollection, key string) {
	switch {
	case key == "" && r.Method == http.MethodGet:
		list := make([]interface{}, 0, len(c.order))
		for _, k := range c.order {
			if item, ok := c.items[k]; ok {
				list = append(list, item)
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"collection": list})

	case key == "" && (r.Method == http.MethodPost || r.Method == http.MethodPut):
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var k string
		switch {
		case c.idField == "":
			k = keyOf(body[servicedef.OrderIDField]) + "/" + keyOf(body[servicedef.ProductIDField])
		case r.Method == http.MethodPut:
			k = keyOf(body[c.idField])
			if _, ok := c.items[k]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
		default:
			k = strconv.Itoa(g.nextID)
			body[c.idField] = g.nextID
			g.nextID++
		}
		if c.path == servicedef.CartsPath {
			body["user"] = map[string]interface{}{servicedef.UserIDField: body[servicedef.UserIDField]}
		}
		if _, exists := c.items[k]; !exists {
			c.order = append(c.order, k)
		}
		c.items[k] = body
		if g.omitIDs[c.path] {
			writeJSON(w, http.StatusOK, map[string]interface{}{})
			return
		}
		writeJSON(w, http.StatusOK, body)

	case key != "" && r.Method == http.MethodGet:
		item, ok := c.items[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case key != "" && r.Method == http.MethodDelete:
		if _, ok := c.items[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(c.items, key)
		g.deleted = append(g.deleted, r.URL.Path)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func keyOf(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

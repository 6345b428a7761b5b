package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customer "github.com/angelmondragon/customercore-backend/internal/customers"
	product "github.com/angelmondragon/customercore-backend/internal/products"
	"github.com/angelmondragon/customercore-backend/pkg/config"
	"github.com/angelmondragon/customercore-backend/pkg/db/dbtest"
	"github.com/angelmondragon/customercore-backend/pkg/logger"
	"github.com/angelmondragon/customercore-backend/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	client := dbtest.OpenSQLite(t)
	reg := prometheus.NewRegistry()

	customerSvc, err := customer.NewService(customer.NewRepository(client.DB()), client)
	require.NoError(t, err)
	productSvc, err := product.NewService(product.NewRepository(client.DB()), client, metrics.NewCatalogMetrics(reg))
	require.NoError(t, err)

	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		HTTP: config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	handler := NewRouter(cfg, logg, client, nil, reg, metrics.NewHTTPMetrics(reg), customerSvc, productSvc)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	Status   int
	Location string
	Data     json.RawMessage
	Error    struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	out := apiResponse{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Data: env.Data}
	if env.Error != nil {
		out.Error.Code = env.Error.Code
		out.Error.Message = env.Error.Message
	}
	return out
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health/live", "").Status)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health/ready", "").Status)
}

func TestCustomerProductLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := call(t, srv, http.MethodPost, "/api/customers", `{"name":"Ada","email":"ada@example.com","total_orders":2}`)
	require.Equal(t, http.StatusCreated, created.Status)
	var ada customer.CustomerDTO
	require.NoError(t, json.Unmarshal(created.Data, &ada))
	assert.Equal(t, "/api/customers/"+ada.ID.String(), created.Location)

	dup := call(t, srv, http.MethodPost, "/api/customers", `{"name":"Imposter","email":"ada@example.com","total_orders":0}`)
	assert.Equal(t, http.StatusConflict, dup.Status)
	assert.Equal(t, "CONFLICT", dup.Error.Code)

	productBody := `{"name":"Widget","product_details":[{"customer_id":"` + ada.ID.String() + `"},{"customer_id":"00000000-0000-0000-0000-000000000001"}]}`
	createdProduct := call(t, srv, http.MethodPost, "/api/products", productBody)
	require.Equal(t, http.StatusCreated, createdProduct.Status)
	var widget product.ProductDTO
	require.NoError(t, json.Unmarshal(createdProduct.Data, &widget))
	require.Len(t, widget.ProductDetails, 1)
	require.NotNil(t, widget.ProductDetails[0].Customer)
	assert.Equal(t, "ada@example.com", widget.ProductDetails[0].Customer.Email)

	fetched := call(t, srv, http.MethodGet, "/api/products/"+widget.ID.String(), "")
	require.Equal(t, http.StatusOK, fetched.Status)

	referenced := call(t, srv, http.MethodDelete, "/api/customers/"+ada.ID.String(), "")
	assert.Equal(t, http.StatusConflict, referenced.Status)
	assert.Equal(t, "customer is referenced by product details", referenced.Error.Message)

	deleted := call(t, srv, http.MethodDelete, "/api/products/"+widget.ID.String(), "")
	require.Equal(t, http.StatusOK, deleted.Status)
	var removed product.DeleteResult
	require.NoError(t, json.Unmarshal(deleted.Data, &removed))
	assert.Equal(t, "product deleted successfully", removed.Message)
	assert.Len(t, removed.Product.ProductDetails, 1)

	gone := call(t, srv, http.MethodGet, "/api/products/"+widget.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, gone.Status)

	freed := call(t, srv, http.MethodDelete, "/api/customers/"+ada.ID.String(), "")
	assert.Equal(t, http.StatusOK, freed.Status)
}

func TestBadIdentifiers(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/api/customers/not-a-uuid", "").Status)
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/products/6a2f41a3-c54c-fce8-32d2-0324e1c32e22", "").Status)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	call(t, srv, http.MethodGet, "/api/customers", "")

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `route="/api/customers"`)
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museum/catalog"
	"museum/entity"
	"museum/http"
)

type catalogStoreMock struct {
	lock    sync.Mutex
	catalog *entity.Catalog
}

func (m *catalogStoreMock) Catalog(ctx context.Context) (entity.Catalog, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.catalog == nil {
		return entity.Catalog{}, entity.ErrNotFound
	}
	return *m.catalog, nil
}

func (m *catalogStoreMock) Store(ctx context.Context, c entity.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.catalog = &c
	return nil
}

type eventBusMock struct {
	lock   sync.Mutex
	events []any
	err    error
}

func (m *eventBusMock) Publish(ctx context.Context, event any) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func newTestServer(t *testing.T) (*http.Server, *catalogStoreMock, *eventBusMock) {
	t.Helper()

	defaultCatalog, err := catalog.Default()
	require.NoError(t, err)

	store := &catalogStoreMock{catalog: &defaultCatalog}
	bus := &eventBusMock{}

	return http.NewServer(":0", bus, store, store), store, bus
}

func doRequest(t *testing.T, server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_PostTicketPrice(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:           "general adult",
			body:           `{"ticket_type":"general","entrant_type":"adult","extras":[]}`,
			expectedStatus: nethttp.StatusOK,
			expectedBody:   map[string]any{"price_in_cents": float64(3000), "price": "30.00"},
		},
		{
			name:           "membership senior with movie",
			body:           `{"ticket_type":"membership","entrant_type":"senior","extras":["movie"]}`,
			expectedStatus: nethttp.StatusOK,
			expectedBody:   map[string]any{"price_in_cents": float64(3300), "price": "33.00"},
		},
		{
			name:           "unknown entrant",
			body:           `{"ticket_type":"general","entrant_type":"kid","extras":[]}`,
			expectedStatus: nethttp.StatusBadRequest,
			expectedBody:   map[string]any{"message": "Entrant type 'kid' cannot be found."},
		},
		{
			name:           "unknown extra",
			body:           `{"ticket_type":"general","entrant_type":"adult","extras":["planetarium"]}`,
			expectedStatus: nethttp.StatusBadRequest,
			expectedBody:   map[string]any{"message": "Extra type 'planetarium' cannot be found."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, _, _ := newTestServer(t)

			rec := doRequest(t, server, nethttp.MethodPost, "/tickets/price", tc.body)
			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedBody, body)
		})
	}
}

func TestServer_PostPurchases(t *testing.T) {
	server, _, bus := newTestServer(t)

	rec := doRequest(t, server, nethttp.MethodPost, "/purchases", `{"purchases":[
		{"ticket_type":"general","entrant_type":"adult","extras":["movie","terrace"]},
		{"ticket_type":"general","entrant_type":"senior","extras":["terrace"]},
		{"ticket_type":"general","entrant_type":"child","extras":["education","movie","terrace"]},
		{"ticket_type":"general","entrant_type":"child","extras":["education","movie","terrace"]}
	]}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	expected := strings.Join([]string{
		"Thank you for visiting the Dinosaur Museum!",
		"-------------------------------------------",
		"Adult General Admission: $50.00 (Movie Access, Terrace Access)",
		"Senior General Admission: $35.00 (Terrace Access)",
		"Child General Admission: $45.00 (Education Access, Movie Access, Terrace Access)",
		"Child General Admission: $45.00 (Education Access, Movie Access, Terrace Access)",
		"-------------------------------------------",
		"TOTAL: $175.00",
	}, "\n")
	assert.Equal(t, expected, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))

	require.Len(t, bus.events, 1)
	purchased, ok := bus.events[0].(entity.TicketsPurchased)
	require.True(t, ok, "expected TicketsPurchased, got %T", bus.events[0])
	assert.Equal(t, entity.Cents(17500), purchased.Total)
	assert.Equal(
		t,
		[]entity.Cents{5000, 3500, 4500, 4500},
		lo.Map(purchased.Tickets, func(ticket entity.PurchasedTicket, _ int) entity.Cents {
			return ticket.Price
		}),
	)
}

func TestServer_PostPurchases_invalid(t *testing.T) {
	server, _, bus := newTestServer(t)

	rec := doRequest(t, server, nethttp.MethodPost, "/purchases", `{"purchases":[
		{"ticket_type":"general","entrant_type":"adult","extras":[]},
		{"ticket_type":"discount","entrant_type":"adult","extras":[]}
	]}`)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ticket type 'discount' cannot be found.", rec.Body.String())
	assert.Empty(t, bus.events)
}

func TestServer_PostPurchases_publish_error(t *testing.T) {
	server, _, bus := newTestServer(t)
	bus.err = errors.New("redis is down")

	rec := doRequest(t, server, nethttp.MethodPost, "/purchases", `{"purchases":[
		{"ticket_type":"general","entrant_type":"adult","extras":[]}
	]}`)

	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
}

func TestServer_Catalog(t *testing.T) {
	server, _, _ := newTestServer(t)

	newCatalog := `{
		"evening": {"description": "Evening Admission", "price_in_cents": {"adult": 1500}},
		"extras": {"drinks": {"description": "Drinks", "price_in_cents": {"adult": 500}}}
	}`

	rec := doRequest(t, server, nethttp.MethodPut, "/catalog", newCatalog)
	require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())

	rec = doRequest(t, server, nethttp.MethodGet, "/catalog", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, newCatalog, rec.Body.String())

	rec = doRequest(t, server, nethttp.MethodPost, "/tickets/price", `{"ticket_type":"evening","entrant_type":"adult","extras":["drinks"]}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"price_in_cents": 2000, "price": "20.00"}`, rec.Body.String())

	rec = doRequest(t, server, nethttp.MethodPost, "/tickets/price", `{"ticket_type":"general","entrant_type":"adult","extras":[]}`)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message": "Ticket type 'general' cannot be found."}`, rec.Body.String())
}

func TestServer_PutCatalog_invalid(t *testing.T) {
	testCases := map[string]string{
		"no ticket types":     `{"extras": {"movie": {"description": "Movie", "price_in_cents": {"adult": 1000}}}}`,
		"negative price":      `{"general": {"description": "General", "price_in_cents": {"adult": -1}}}`,
		"missing description": `{"general": {"price_in_cents": {"adult": 1000}}}`,
	}

	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			server, store, _ := newTestServer(t)
			before, err := store.Catalog(context.Background())
			require.NoError(t, err)

			rec := doRequest(t, server, nethttp.MethodPut, "/catalog", body)
			assert.Equal(t, nethttp.StatusBadRequest, rec.Code, rec.Body.String())

			after, err := store.Catalog(context.Background())
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestServer_Health(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := doRequest(t, server, nethttp.MethodGet, "/health", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_catalog_not_loaded(t *testing.T) {
	store := &catalogStoreMock{}
	server := http.NewServer(":0", &eventBusMock{}, store, store)

	testCases := []struct {
		method string
		path   string
		body   string
	}{
		{method: nethttp.MethodGet, path: "/catalog"},
		{method: nethttp.MethodPost, path: "/tickets/price", body: `{"ticket_type":"general","entrant_type":"adult","extras":[]}`},
		{method: nethttp.MethodPost, path: "/purchases", body: `{"purchases":[{"ticket_type":"general","entrant_type":"adult","extras":[]}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doRequest(t, server, tc.method, tc.path, tc.body)
			assert.Equal(t, nethttp.StatusNotFound, rec.Code, fmt.Sprintf("body: %s", rec.Body.String()))
		})
	}
}

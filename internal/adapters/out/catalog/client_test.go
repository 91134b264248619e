package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordering/internal/adapters/out/catalog"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	return metrics.New(reg, reg)
}

func TestClient_GetItem_Found(t *testing.T) {
	var gotPath, gotAccept string
	server := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pizza 01","name":"Margherita","price":12.50,"available":true}`))
	})
	m := newTestMetrics()
	client := catalog.NewClient(server.URL+"/", time.Second, m)

	item, found, err := client.GetItem(t.Context(), "pizza 01")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "/menu-items/pizza%2001", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "pizza 01", item.ID)
	assert.Equal(t, "Margherita", item.Name)
	assert.Equal(t, "12.50", item.Price.String())
	assert.InDelta(t, 1, testutil.ToFloat64(m.CatalogLookups.WithLabelValues(metrics.LookupFound)), 0)
}

func TestClient_GetItem_PriceAsString(t *testing.T) {
	server := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"A","name":"Cola","price":"3.00"}`))
	})

	item, found, err := catalog.NewClient(server.URL, time.Second, nil).GetItem(t.Context(), "A")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3.00", item.Price.String())
}

func TestClient_GetItem_NotFound(t *testing.T) {
	server := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	m := newTestMetrics()

	_, found, err := catalog.NewClient(server.URL, time.Second, m).GetItem(t.Context(), "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CatalogLookups.WithLabelValues(metrics.LookupNotFound)), 0)
}

func TestClient_GetItem_EmptyBodyIsNotFound(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"id":"A"}`} {
		t.Run(body, func(t *testing.T) {
			server := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})
			m := newTestMetrics()

			item, found, err := catalog.NewClient(server.URL, time.Second, m).GetItem(t.Context(), "A")

			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, item.Name)
			assert.InDelta(t, 1, testutil.ToFloat64(m.CatalogLookups.WithLabelValues(metrics.LookupNotFound)), 0)
		})
	}
}

func TestClient_GetItem_ServerErrorIsUnavailable(t *testing.T) {
	server := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	m := newTestMetrics()

	_, found, err := catalog.NewClient(server.URL, time.Second, m).GetItem(t.Context(), "A")

	require.ErrorIs(t, err, errs.ErrDependencyIsUnavailable)
	assert.False(t, found)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CatalogLookups.WithLabelValues(metrics.LookupUnavailable)), 0)
}

func TestClient_GetItem_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	server := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	start := time.Now()
	_, _, err := catalog.NewClient(server.URL, 50*time.Millisecond, nil).GetItem(t.Context(), "A")

	require.ErrorIs(t, err, errs.ErrDependencyIsUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_GetItem_ConnectionRefusedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, _, err := catalog.NewClient(url, time.Second, nil).GetItem(t.Context(), "A")

	require.ErrorIs(t, err, errs.ErrDependencyIsUnavailable)
}

func TestClient_GetItem_UnexpectedAnswers(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "client error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"name":`))
			},
		},
		{
			name: "item without price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"A","name":"Cola"}`))
			},
		},
		{
			name: "item without name",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"A","price":3.00}`))
			},
		},
		{
			name: "negative price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"A","name":"Cola","price":-1}`))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newCatalogServer(t, tc.handler)
			m := newTestMetrics()

			_, found, err := catalog.NewClient(server.URL, time.Second, m).GetItem(t.Context(), "A")

			require.Error(t, err)
			assert.False(t, found)
			assert.NotErrorIs(t, err, errs.ErrDependencyIsUnavailable)
			assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.InDelta(t, 1, testutil.ToFloat64(m.CatalogLookups.WithLabelValues(metrics.LookupError)), 0)
		})
	}
}

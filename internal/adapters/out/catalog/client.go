// Package catalog resolves product identifiers against the menu service over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const dependencyName = "catalog"

const tracerName = "ordering/catalog"

// Client implements ports.CatalogClient against GET {baseURL}/menu-items/{id}.
//
// A 200 answer carrying an item is a hit; 404 or an empty 200 body is a miss.
// Transport failures, timeouts and 5xx answers make the catalog unavailable.
// Any other answer is an unexpected error.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *metrics.Metrics
}

type itemResponse struct {
	ID    string              `json:"id"`
	Name  *string             `json:"name"`
	Price decimal.NullDecimal `json:"price"`
}

// NewClient builds a client whose every lookup is bounded by timeout.
// A zero timeout leaves lookups bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tracer:  otel.Tracer(tracerName),
		metrics: m,
	}
}

var _ ports.CatalogClient = (*Client)(nil)

func (c *Client) GetItem(ctx context.Context, productID string) (ports.CatalogItem, bool, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "catalog.GetItem", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	item, found, err := c.getItem(ctx, span, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	c.metrics.ObserveCatalogLookup(lookupResult(found, err))
	return item, found, err
}

func (c *Client) getItem(ctx context.Context, span trace.Span, productID string) (ports.CatalogItem, bool, error) {
	endpoint := c.baseURL + "/menu-items/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.CatalogItem{}, false, err
	}
	req.Header.Set("Accept", "application/json")

	span.SetAttributes(
		attribute.String("http.url", endpoint),
		attribute.String("http.method", http.MethodGet),
		attribute.String("catalog.product_id", productID),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.CatalogItem{}, false, errs.NewDependencyIsUnavailableErrorWithCause(dependencyName, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
		item, found, err := decodeItem(resp.Body, productID)
		if err != nil && ctx.Err() != nil {
			return ports.CatalogItem{}, false, errs.NewDependencyIsUnavailableErrorWithCause(dependencyName, err)
		}
		if err != nil {
			return ports.CatalogItem{}, false, err
		}
		return item, found, nil
	case resp.StatusCode == http.StatusNotFound:
		return ports.CatalogItem{}, false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return ports.CatalogItem{}, false, errs.NewDependencyIsUnavailableErrorWithCause(
			dependencyName,
			fmt.Errorf("menu service returned status %s", resp.Status),
		)
	default:
		return ports.CatalogItem{}, false, fmt.Errorf("menu service returned status %s for %s", resp.Status, productID)
	}
}

// decodeItem treats a null body, or one without any item fields, as a miss.
// An item that carries only some of its fields is an unexpected answer.
func decodeItem(body io.Reader, productID string) (ports.CatalogItem, bool, error) {
	var payload *itemResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ports.CatalogItem{}, false, fmt.Errorf("decode menu item %s: %w", productID, err)
	}
	if payload == nil || (payload.Name == nil && !payload.Price.Valid) {
		return ports.CatalogItem{}, false, nil
	}
	if payload.Name == nil || !payload.Price.Valid {
		return ports.CatalogItem{}, false, fmt.Errorf("menu item %s is missing its name or price", productID)
	}

	price, err := kernel.NewMoney(payload.Price.Decimal)
	if err != nil {
		return ports.CatalogItem{}, false, fmt.Errorf("menu item %s has an unusable price: %v", productID, err) //nolint:errorlint // not a client input error
	}

	id := payload.ID
	if id == "" {
		id = productID
	}
	return ports.CatalogItem{ID: id, Name: *payload.Name, Price: price}, true, nil
}

func lookupResult(found bool, err error) string {
	switch {
	case err == nil && found:
		return metrics.LookupFound
	case err == nil:
		return metrics.LookupNotFound
	case errors.Is(err, errs.ErrDependencyIsUnavailable):
		return metrics.LookupUnavailable
	default:
		return metrics.LookupError
	}
}

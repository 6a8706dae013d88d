// Package lookup resolves scanned barcodes to product records: first the
// local product store, then a public food-product API, then a blank template
// the user fills in.
package lookup

import (
	"context"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/pantrykit/pantrykit/internal/domain"
)

// DefaultBaseURL is the Open Food Facts product endpoint.
const DefaultBaseURL = "https://world.openfoodfacts.org/api/v2/product"

// DefaultTimeout bounds a single lookup attempt. The upstream design had no
// timeout at all; callers sit on a loading state for the duration.
const DefaultTimeout = 10 * time.Second

// RemoteResolver fetches product metadata for a scanned code. Any failure is
// reported as an error and treated uniformly as "not found" upstream.
type RemoteResolver interface {
	Fetch(ctx context.Context, code, codeType string) (*domain.Product, error)
}

// OpenFoodFactsClient resolves codes against the Open Food Facts API with a
// single GET per lookup, no retries.
type OpenFoodFactsClient struct {
	BaseURL string
	Timeout time.Duration
}

var _ RemoteResolver = (*OpenFoodFactsClient)(nil)

func NewOpenFoodFactsClient(baseURL string, timeout time.Duration) *OpenFoodFactsClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenFoodFactsClient{BaseURL: baseURL, Timeout: timeout}
}

type offResponse struct {
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
	} `json:"product"`
}

// Fetch performs GET {base}/{code}.json?fields=product_name,brands. A
// non-2xx status, a missing product_name or brands field, or any network or
// parse error yields an error.
func (c *OpenFoodFactsClient) Fetch(ctx context.Context, code, codeType string) (*domain.Product, error) {
	var (
		body       offResponse
		statusCode int
	)
	err := gout.GET(c.BaseURL+"/"+code+".json").
		WithContext(ctx).
		SetTimeout(c.Timeout).
		SetQuery(gout.H{"fields": "product_name,brands"}).
		Code(&statusCode).
		BindJSON(&body).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", code)
	}
	if statusCode != http.StatusOK {
		return nil, errors.Errorf("lookup %s: status %d", code, statusCode)
	}
	if body.Product.ProductName == "" || body.Product.Brands == "" {
		return nil, errors.Errorf("lookup %s: record incomplete", code)
	}
	return &domain.Product{
		Code:         code,
		CodeType:     codeType,
		Name:         body.Product.ProductName,
		Manufacturer: body.Product.Brands,
	}, nil
}

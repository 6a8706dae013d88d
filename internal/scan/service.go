package scan

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/lookup"
	"github.com/pantrykit/pantrykit/internal/store"
)

// ConfirmOptions carries the user-entered fields collected after a scan.
// Zero/empty fields fall back to the freshly created entry's defaults.
type ConfirmOptions struct {
	Amount    *float64
	ExpiresAt string // free-form date input, parsed leniently
	Notes     string
}

// Service drives the scan workflow: resolve a scanned code to a product,
// then on user confirmation persist the product and its list entry.
type Service struct {
	products *store.ProductStore
	list     *store.ListStore
	resolver *lookup.Orchestrator
}

func NewService(products *store.ProductStore, list *store.ListStore, resolver *lookup.Orchestrator) *Service {
	return &Service{products: products, list: list, resolver: resolver}
}

// Resolve turns a scan result into a product. isNew tells the caller whether
// to show an editable create form (true) or a read-only confirm form.
func (s *Service) Resolve(ctx context.Context, res Result) (product domain.Product, isNew bool) {
	return s.resolver.Resolve(ctx, res.Data, res.Type)
}

// Confirm persists the (possibly user-edited) product, creates a list entry
// for it, and patches the collected amount/expiry/notes onto the entry.
// Returns nil when the entry could not be written; the product write is
// best-effort either way.
func (s *Service) Confirm(product domain.Product, opts ConfirmOptions) *domain.ListEntry {
	s.products.Upsert(product)
	entry := s.list.AddByProduct(product)
	if entry == nil {
		return nil
	}

	patch := domain.ListPatch{Amount: opts.Amount}
	if opts.ExpiresAt != "" {
		if expires, err := ParseExpiry(opts.ExpiresAt); err == nil {
			patch.ExpiresAt = &expires
		}
	}
	if opts.Notes != "" {
		notes := opts.Notes
		patch.Notes = &notes
	}
	if patch.Amount == nil && patch.ExpiresAt == nil && patch.Notes == nil {
		return entry
	}
	if updated := s.list.Update(entry.ID, patch); updated != nil {
		return updated
	}
	return entry
}

// ParseExpiry accepts free-form date input and normalizes it to RFC 3339 UTC.
func ParseExpiry(input string) (string, error) {
	t, err := dateparse.ParseAny(input)
	if err != nil {
		return "", errors.Wrapf(err, "parse expiry date %q", input)
	}
	return t.UTC().Format(time.RFC3339), nil
}

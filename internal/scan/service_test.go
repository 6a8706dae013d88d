package scan

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/eventbus"
	"github.com/pantrykit/pantrykit/internal/lookup"
	"github.com/pantrykit/pantrykit/internal/store"
)

type offlineResolver struct{}

func (offlineResolver) Fetch(ctx context.Context, code, codeType string) (*domain.Product, error) {
	return nil, errors.New("offline")
}

func newTestService(t *testing.T) (*Service, *store.ProductStore, *store.ListStore) {
	t.Helper()
	backend, err := store.OpenBolt(filepath.Join(t.TempDir(), "scan.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { backend.Close() })
	bus := eventbus.New()
	products := store.NewProductStore(backend, bus)
	list := store.NewListStore(backend, bus)
	svc := NewService(products, list, lookup.NewOrchestrator(products, offlineResolver{}))
	return svc, products, list
}

// The full scan flow: an unknown code resolves to a blank editable template;
// after the user fills in a name and confirms, the product is stored and
// exactly one list entry references it.
func TestScanConfirmFlow(t *testing.T) {
	svc, products, list := newTestService(t)

	product, isNew := svc.Resolve(context.Background(), Result{Data: "4058172694974", Type: SymEAN13})
	if !isNew {
		t.Fatal("unknown code must resolve as new")
	}
	if product.Code != "4058172694974" || product.CodeType != SymEAN13 ||
		product.Name != "" || product.Manufacturer != "" {
		t.Fatalf("unexpected blank template %+v", product)
	}

	product.Name = "Test"
	entry := svc.Confirm(product, ConfirmOptions{})
	if entry == nil {
		t.Fatal("expected entry")
	}

	stored := products.Get("4058172694974")
	if stored == nil || stored.Name != "Test" {
		t.Fatalf("product not persisted on confirm: %+v", stored)
	}
	entries := list.GetAll()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(entries))
	}
	if entries[0].ProductCode != "4058172694974" || entries[0].Amount != 1 {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestConfirmAppliesCollectedFields(t *testing.T) {
	svc, _, list := newTestService(t)

	amount := 2.0
	entry := svc.Confirm(domain.Product{Code: "42", CodeType: SymEAN8}, ConfirmOptions{
		Amount:    &amount,
		ExpiresAt: "2026-09-15",
		Notes:     "back shelf",
	})
	if entry == nil {
		t.Fatal("expected entry")
	}
	if entry.Amount != 2 || entry.Notes != "back shelf" {
		t.Fatalf("options not applied: %+v", entry)
	}
	if entry.ExpiresAt != "2026-09-15T00:00:00Z" {
		t.Fatalf("expiry not normalized: %q", entry.ExpiresAt)
	}
	if got := list.GetAll(); len(got) != 1 || got[0] != *entry {
		t.Fatalf("stored entry mismatch: %+v", got)
	}
}

func TestConfirmSameProductTwice(t *testing.T) {
	svc, _, list := newTestService(t)
	p := domain.Product{Code: "42", CodeType: SymEAN8, Name: "Twice"}

	first := svc.Confirm(p, ConfirmOptions{})
	second := svc.Confirm(p, ConfirmOptions{})
	if first == nil || second == nil {
		t.Fatal("expected entries")
	}
	if first.ID == second.ID {
		t.Fatal("entries must be independent")
	}
	if got := len(list.GetAll()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestParseExpiry(t *testing.T) {
	got, err := ParseExpiry("15 Sep 2026")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2026-09-15T00:00:00Z" {
		t.Fatalf("unexpected %q", got)
	}
	if _, err := ParseExpiry("not a date"); err == nil {
		t.Fatal("expected error")
	}
}

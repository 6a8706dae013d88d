package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/eventbus"
	"github.com/pantrykit/pantrykit/internal/store"
)

type failingResolver struct{}

func (failingResolver) Fetch(ctx context.Context, code, codeType string) (*domain.Product, error) {
	return nil, errors.New("network down")
}

type stubResolver struct {
	product *domain.Product
	calls   int
}

func (s *stubResolver) Fetch(ctx context.Context, code, codeType string) (*domain.Product, error) {
	s.calls++
	if s.product == nil {
		return nil, errors.New("not found")
	}
	return s.product, nil
}

func newProducts(t *testing.T) *store.ProductStore {
	t.Helper()
	backend, err := store.OpenBolt(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { backend.Close() })
	return store.NewProductStore(backend, eventbus.New())
}

func TestResolveLocalHit(t *testing.T) {
	products := newProducts(t)
	products.Upsert(domain.Product{Code: "42", CodeType: "ean8", Name: "Local"})
	remote := &stubResolver{}
	o := NewOrchestrator(products, remote)

	p, isNew := o.Resolve(context.Background(), "42", "ean8")
	if isNew {
		t.Fatal("local hit must not be new")
	}
	if p.Name != "Local" {
		t.Fatalf("unexpected product %+v", p)
	}
	if remote.calls != 0 {
		t.Fatal("remote must not be consulted on a local hit")
	}
}

func TestResolveRemoteHitPersists(t *testing.T) {
	products := newProducts(t)
	remote := &stubResolver{product: &domain.Product{
		Code: "42", CodeType: "ean8", Name: "Remote", Manufacturer: "Acme",
	}}
	o := NewOrchestrator(products, remote)

	p, isNew := o.Resolve(context.Background(), "42", "ean8")
	if isNew {
		t.Fatal("remote hit must not be new")
	}
	if p.Name != "Remote" {
		t.Fatalf("unexpected product %+v", p)
	}
	// resolution itself writes the record, no second write step needed
	stored := products.Get("42")
	if stored == nil || stored.Name != "Remote" {
		t.Fatalf("remote hit was not persisted: %+v", stored)
	}
}

func TestResolveFallsBackToBlankTemplate(t *testing.T) {
	products := newProducts(t)
	o := NewOrchestrator(products, failingResolver{})

	p, isNew := o.Resolve(context.Background(), "4058172694974", "ean13")
	if !isNew {
		t.Fatal("blank template must be flagged new")
	}
	want := domain.Product{Code: "4058172694974", CodeType: "ean13"}
	if p != want {
		t.Fatalf("unexpected template %+v", p)
	}
	// deferred persistence: nothing written until the user confirms
	if products.Get("4058172694974") != nil {
		t.Fatal("blank template must not be persisted by resolution")
	}
}

func TestClientFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/12345.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != "product_name,brands" {
			t.Errorf("unexpected fields param %q", got)
		}
		w.Write([]byte(`{"product":{"product_name":"Oat Drink","brands":"Oatly"}}`))
	}))
	defer srv.Close()

	client := NewOpenFoodFactsClient(srv.URL, time.Second)
	p, err := client.Fetch(context.Background(), "12345", "ean8")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Oat Drink" || p.Manufacturer != "Oatly" || p.Code != "12345" || p.CodeType != "ean8" {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.ImageRef != nil {
		t.Fatal("imageRef must start null")
	}
}

func TestClientFetchFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "product not found", http.StatusNotFound)
		},
		"missing fields": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"product":{"product_name":"Nameless"}}`))
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{{{`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			client := NewOpenFoodFactsClient(srv.URL, time.Second)
			if _, err := client.Fetch(context.Background(), "1", "ean8"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

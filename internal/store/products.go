package store

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/eventbus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductStore is a stateless facade over the "products" collection. Records
// are keyed by Product.Code: a write with an existing code replaces the prior
// record wholesale, no field-level merge. Reads degrade to empty/nil on any
// backend or parse failure, writes are best-effort; callers that need
// confirmation re-read after the change event.
type ProductStore struct {
	backend Backend
	bus     *eventbus.Bus
}

func NewProductStore(backend Backend, bus *eventbus.Bus) *ProductStore {
	return &ProductStore{backend: backend, bus: bus}
}

// Init seeds the collection with one example record. A missing collection is
// written fresh, an intact collection gets the seed appended only if its code
// is absent, and a corrupt collection is replaced outright — corruption
// self-heals instead of being fatal.
func (s *ProductStore) Init() {
	seed := domain.SeedProduct()
	raw, err := s.backend.GetString(productsKey)
	if err == ErrKeyNotFound {
		s.write([]domain.Product{seed})
		return
	}
	if err != nil {
		zap.S().Warnf("product store init: backend unavailable: %v", err)
		return
	}
	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		zap.S().Warnf("product store init: resetting corrupt collection: %v", err)
		s.write([]domain.Product{seed})
		return
	}
	for _, p := range products {
		if p.Code == seed.Code {
			return
		}
	}
	s.write(append(products, seed))
}

// Get returns the product with the given code, or nil on a miss or any
// backend/parse failure.
func (s *ProductStore) Get(code string) *domain.Product {
	for _, p := range s.load() {
		if p.Code == code {
			p := p
			return &p
		}
	}
	return nil
}

// GetAll returns every stored product, empty on any failure.
func (s *ProductStore) GetAll() []domain.Product {
	return s.load()
}

// Upsert replaces the record with the same code, or appends. Publishes
// productsChanged after a successful write.
func (s *ProductStore) Upsert(product domain.Product) {
	products := s.load()
	replaced := false
	for i, p := range products {
		if p.Code == product.Code {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}
	if s.write(products) {
		s.bus.Publish(eventbus.TopicProductsChanged)
	}
}

// Edit removes any record with oldCode and upserts product, which may carry a
// different code — a primary-key rename. Publishes productsChanged after a
// successful write.
func (s *ProductStore) Edit(oldCode string, product domain.Product) {
	products := s.load()
	kept := products[:0]
	for _, p := range products {
		if p.Code != oldCode {
			kept = append(kept, p)
		}
	}
	replaced := false
	for i, p := range kept {
		if p.Code == product.Code {
			kept[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		kept = append(kept, product)
	}
	if s.write(kept) {
		s.bus.Publish(eventbus.TopicProductsChanged)
	}
}

// load reads the full collection, degrading to empty on absence, backend
// failure, or malformed JSON.
func (s *ProductStore) load() []domain.Product {
	raw, err := s.backend.GetString(productsKey)
	if err != nil {
		if err != ErrKeyNotFound {
			zap.S().Debugf("product store read: %v", err)
		}
		return nil
	}
	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		zap.S().Debugf("product store: malformed collection: %v", err)
		return nil
	}
	return products
}

func (s *ProductStore) write(products []domain.Product) bool {
	if products == nil {
		products = []domain.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		zap.S().Warnf("product store encode: %v", err)
		return false
	}
	if err := s.backend.SetString(productsKey, string(data)); err != nil {
		zap.S().Warnf("product store write dropped: %v", err)
		return false
	}
	return true
}

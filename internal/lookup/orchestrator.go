package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/store"
)

// Orchestrator implements the local-then-remote-then-blank resolution
// algorithm. Resolve never fails outward: the caller always gets a usable
// product, possibly with blank name and manufacturer.
type Orchestrator struct {
	products *store.ProductStore
	remote   RemoteResolver
}

func NewOrchestrator(products *store.ProductStore, remote RemoteResolver) *Orchestrator {
	return &Orchestrator{products: products, remote: remote}
}

// Resolve looks code up locally, then remotely, then falls back to a blank
// template. isNew is true only on the blank-template path: a remote hit is
// persisted into the product store as part of resolution, so downstream the
// record already exists and the read-only confirm form applies, while a
// blank template is deliberately not persisted until the user confirms.
func (o *Orchestrator) Resolve(ctx context.Context, code, codeType string) (product domain.Product, isNew bool) {
	if p := o.products.Get(code); p != nil {
		return *p, false
	}
	p, err := o.remote.Fetch(ctx, code, codeType)
	if err == nil && p != nil {
		o.products.Upsert(*p)
		return *p, false
	}
	if err != nil {
		zap.S().Debugf("remote lookup fell through: %v", err)
	}
	return domain.BlankProduct(code, codeType), true
}

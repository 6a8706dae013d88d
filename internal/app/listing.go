package app

import "github.com/pantrykit/pantrykit/internal/domain"

// ListRow is a list entry joined with the product it references.
type ListRow struct {
	Entry   domain.ListEntry
	Product domain.Product
}

// ListRows reads both collections and joins each list entry with its product
// record. An entry whose productCode has no matching product gets the
// placeholder product instead; a dangling reference is a supported state,
// not an error.
func (a *Application) ListRows() []ListRow {
	products := a.products.GetAll()
	byCode := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}

	entries := a.list.GetAll()
	rows := make([]ListRow, 0, len(entries))
	for _, e := range entries {
		p, ok := byCode[e.ProductCode]
		if !ok {
			p = domain.PlaceholderProduct(e.ProductCode)
		}
		rows = append(rows, ListRow{Entry: e, Product: p})
	}
	return rows
}

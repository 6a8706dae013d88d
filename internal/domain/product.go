package domain

// Product is a catalogued item keyed by its barcode value. The code is the
// primary key of the product collection and stays stable across symbologies.
type Product struct {
	Code         string  `json:"code"`
	CodeType     string  `json:"code_type"`
	Name         string  `json:"product_name"`
	Manufacturer string  `json:"product_manufacturer"`
	ImageRef     *string `json:"image_ref"`
}

// BlankProduct returns an empty product template for a scanned code that
// resolved neither locally nor remotely. It is not persisted until the user
// confirms it.
func BlankProduct(code, codeType string) Product {
	return Product{
		Code:     code,
		CodeType: codeType,
	}
}

// PlaceholderProduct substitutes for a list entry whose productCode has no
// matching product record. A dangling reference is tolerated, not an error.
func PlaceholderProduct(code string) Product {
	return Product{
		Code:     code,
		CodeType: "unknown",
		Name:     "Unknown product",
	}
}

// SeedProduct is the record written on first run so that a fresh install has
// one known-good row to render.
func SeedProduct() Product {
	return Product{
		Code:         "4058172694974",
		CodeType:     "ean13",
		Name:         "Melatonin Plus Schlaf-Komplex",
		Manufacturer: "Mivolis (drogerie-markt)",
	}
}

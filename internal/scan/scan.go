// Package scan defines the barcode scan input contract, display formatting
// for scanned codes, and the confirm flow that turns a scan into a product
// record plus a list entry.
package scan

import "context"

// Supported symbology tags. The tag only affects display formatting; the
// scanned digits are the stable identifier.
const (
	SymEAN13   = "ean13"
	SymEAN8    = "ean8"
	SymUPCA    = "upc_a"
	SymUPCE    = "upc_e"
	SymCodabar = "codabar"
)

// Result is one decoded barcode from the device capability.
type Result struct {
	Data string
	Type string
}

// Scanner yields decoded barcodes from a live feed. Decoding itself is a
// device concern; this package only consumes the results.
type Scanner interface {
	Scan(ctx context.Context) (Result, error)
}

// Supported reports whether the symbology is one the scan flow accepts.
func Supported(codeType string) bool {
	switch codeType {
	case SymEAN13, SymEAN8, SymUPCA, SymUPCE, SymCodabar:
		return true
	}
	return false
}

package scan

import "testing"

func TestFormatCode(t *testing.T) {
	cases := []struct {
		code     string
		codeType string
		want     string
	}{
		{"4058172694974", "ean13", "4 058172 694974"},
		{"123456789012", "ean13", "123456 789012"},
		{"96385074", "ean8", "9638 5074"},
		{"123456789", "ean8", "1 2345 6789"},
		{"4058172694974", "upc_a", "4058172694974"},
		{"X", "other", "X"},
		{"", "ean13", ""},
		{"12345", "ean13", "12345"},
	}
	for _, c := range cases {
		if got := FormatCode(c.code, c.codeType); got != c.want {
			t.Errorf("FormatCode(%q, %q) = %q, want %q", c.code, c.codeType, got, c.want)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, sym := range []string{SymEAN13, SymEAN8, SymUPCA, SymUPCE, SymCodabar} {
		if !Supported(sym) {
			t.Errorf("%s should be supported", sym)
		}
	}
	if Supported("qr") {
		t.Error("qr should not be supported")
	}
}

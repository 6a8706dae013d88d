package domain

// ListEntry is one quantity/expiry/notes record on the shopping list. Each
// entry has its own identity independent of the product it references, so a
// single product can appear on the list any number of times.
type ListEntry struct {
	ID          string  `json:"id"`
	ProductCode string  `json:"productCode"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	ExpiresAt   string  `json:"expiresAt,omitempty"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes,omitempty"`
}

// ListPatch is a partial update for a ListEntry. Nil fields keep the stored
// value. The entry id and createdAt are not patchable.
type ListPatch struct {
	ProductCode *string
	ExpiresAt   *string
	Amount      *float64
	Notes       *string
}

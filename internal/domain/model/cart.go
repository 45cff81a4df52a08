package model

// Cart maps product identifiers to positive quantities.
type Cart map[string]int

// Compact drops entries with non-positive quantity.
func (c Cart) Compact() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// Quote is a cart priced against the catalog.
type Quote struct {
	Items []LineItem
	Total MinorAmount
}

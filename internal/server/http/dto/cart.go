package dto

import "github.com/polkiloo/eatsprint/internal/domain/model"

// CartItemRequest references a catalog item.
type CartItemRequest struct {
	ItemID string `json:"itemId"`
}

// CartMergeRequest carries an anonymous cart collected before login.
type CartMergeRequest struct {
	CartData model.Cart `json:"cartData"`
}

// CartResponse returns item quantities keyed by catalog id.
type CartResponse struct {
	Success  bool       `json:"success"`
	CartData model.Cart `json:"cartData"`
}

// QuoteResponse returns cart priced in minor units.
type QuoteResponse struct {
	Success bool       `json:"success"`
	Items   []LineItem `json:"items"`
	Amount  int64      `json:"amount"`
}

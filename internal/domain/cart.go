package domain

// CartItem is a single line of the user's cart as the catalog API represents
// it.
type CartItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartSnapshot is the locally held view of the remote cart. Total is taken
// from the remote service on a full refresh and recomputed locally after
// partial mutations.
type CartSnapshot struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// IsEmpty reports whether the snapshot has no items.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalQuantity sums the quantities across all lines.
func (s CartSnapshot) TotalQuantity() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// FindItemIndex returns the index of the line holding productID, or -1.
func (s CartSnapshot) FindItemIndex(productID int64) int {
	for i, item := range s.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RecomputeTotal recalculates Total from the line items.
func (s *CartSnapshot) RecomputeTotal() {
	var total float64
	for _, item := range s.Items {
		total += item.Subtotal()
	}
	s.Total = total
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// concurrent mutations.
func (s CartSnapshot) Clone() CartSnapshot {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartSnapshot{Items: items, Total: s.Total}
}

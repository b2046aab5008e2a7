package domain

// CheckoutItem is one cart line translated to the payment gateway's format.
// CurrencyID is always BRL.
type CheckoutItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
}

// CheckoutPayload is the preference request sent to the payment gateway.
type CheckoutPayload struct {
	Items       []CheckoutItem `json:"items"`
	ShippingFee float64        `json:"freteValor,omitempty"`
}

// CheckoutPreference is the gateway's answer: the URL the customer must be
// sent to in order to pay.
type CheckoutPreference struct {
	URL string `json:"url"`
}

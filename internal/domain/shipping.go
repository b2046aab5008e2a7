package domain

// Address is a Brazilian postal address as returned by the CEP lookup
// service.
type Address struct {
	CEP          string `json:"cep"`
	State        string `json:"uf"`
	City         string `json:"localidade"`
	Neighborhood string `json:"bairro"`
	Street       string `json:"logradouro"`
}

// PackageProfile describes the parcel dimensions sent to carriers. The
// storefront ships everything in a single standard box.
type PackageProfile struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

// DefaultPackage is the standard box profile used for every quote.
var DefaultPackage = PackageProfile{
	Height: 4,
	Width:  12,
	Length: 17,
	Weight: 0.3,
}

// ShippingRequest is the payload sent to the shipping calculator.
type ShippingRequest struct {
	FromCEP string         `json:"from"`
	ToCEP   string         `json:"to"`
	Package PackageProfile `json:"package"`
}

// ShippingQuote is one carrier's answer. Entries whose Error field is set
// could not serve the route and must be skipped when choosing the cheapest.
type ShippingQuote struct {
	CarrierName  string  `json:"company"`
	ServiceName  string  `json:"name"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_time"`
	Error        string  `json:"error,omitempty"`
}

// Usable reports whether the quote can be offered to the customer.
func (q ShippingQuote) Usable() bool {
	return q.Error == ""
}

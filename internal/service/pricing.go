package service

import (
	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/config"
)

// Default shipping rule: orders of 2000 PKR and above ship free,
// everything below pays a flat 200 PKR fee.
const (
	DefaultFreeShippingThreshold int64 = 2000
	DefaultFlatShippingFee       int64 = 200
)

// Totals is the priced breakdown of a cart
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	GrandTotal  int64 `json:"grand_total"`
}

// Pricer computes cart totals under the free-shipping threshold rule
type Pricer struct {
	freeThreshold int64
	flatFee       int64
}

// NewPricer creates a pricer from the shipping config, falling back to
// the default rule when unset
func NewPricer(cfg config.ShippingConfig) *Pricer {
	p := &Pricer{
		freeThreshold: cfg.FreeThreshold,
		flatFee:       cfg.FlatFee,
	}
	if p.freeThreshold == 0 {
		p.freeThreshold = DefaultFreeShippingThreshold
	}
	return p
}

// ComputeTotals prices the cart: subtotal is the sum of unit price
// times quantity, the shipping fee is zero iff the subtotal meets the
// free-shipping threshold, and the grand total is their sum.
func (p *Pricer) ComputeTotals(lines []cart.Line) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	var fee int64
	if subtotal < p.freeThreshold {
		fee = p.flatFee
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		GrandTotal:  subtotal + fee,
	}
}

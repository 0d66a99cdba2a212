// Package checkout sequences the Shipping -> Payment -> Review steps of a
// purchase. The flow never creates a server-side order record; placing the
// order is a simulated terminal action that clears the cart on success.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/cart"
)

type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return "unknown"
}

const (
	MethodCard           = "credit-card"
	MethodCashOnDelivery = "cod"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrWrongStep          = errors.New("action not allowed at current step")
	ErrIncompleteShipping = errors.New("shipping information incomplete")
	ErrIncompletePayment  = errors.New("payment information incomplete")
	ErrOrderFailed        = errors.New("failed to place order")
)

type ShippingInfo struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (i ShippingInfo) complete() bool {
	fields := []string{i.FullName, i.Email, i.Phone, i.Address, i.City, i.State, i.PostalCode, i.Country}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

type PaymentInfo struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	CardName   string `json:"card_name,omitempty"`
}

// complete requires the card fields only when paying by card; cash on
// delivery needs nothing beyond the method itself.
func (i PaymentInfo) complete() bool {
	if strings.TrimSpace(i.Method) == "" {
		return false
	}
	if i.Method == MethodCashOnDelivery {
		return true
	}
	fields := []string{i.CardNumber, i.ExpiryDate, i.CVV, i.CardName}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Summary is the order total breakdown shown on the review step
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

const (
	taxRate           = 0.08
	flatShippingPrice = 10.0
	freeShippingAbove = 100.0
)

// orderProcessingDelay simulates payment processing; overridden in tests
var orderProcessingDelay = 2 * time.Second

// Flow is the checkout state machine for one cart. It is driven serially by
// a single caller; the underlying cart guards its own state.
type Flow struct {
	cart     *cart.Cart
	step     Step
	shipping ShippingInfo
	payment  PaymentInfo
}

// NewFlow starts a checkout for the given cart. An empty cart cannot enter
// checkout.
func NewFlow(c *cart.Cart) (*Flow, error) {
	if c.ItemsCount() == 0 {
		return nil, ErrEmptyCart
	}
	return &Flow{cart: c, step: StepShipping}, nil
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Shipping() ShippingInfo {
	return f.shipping
}

func (f *Flow) Payment() PaymentInfo {
	return f.payment
}

// SubmitShipping records the shipping form and advances to the payment step
func (f *Flow) SubmitShipping(info ShippingInfo) error {
	if f.step != StepShipping {
		return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepShipping, f.step)
	}
	if !info.complete() {
		return ErrIncompleteShipping
	}
	f.shipping = info
	f.step = StepPayment
	return nil
}

// SubmitPayment records the payment form and advances to the review step
func (f *Flow) SubmitPayment(info PaymentInfo) error {
	if f.step != StepPayment {
		return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepPayment, f.step)
	}
	if !info.complete() {
		return ErrIncompletePayment
	}
	f.payment = info
	f.step = StepReview
	return nil
}

// Back moves one step towards shipping, keeping the recorded form data.
// At the shipping step it is a no-op.
func (f *Flow) Back() {
	if f.step > StepShipping {
		f.step--
	}
}

// Summary computes the order totals: 8% tax on the subtotal and flat-rate
// shipping that is waived above the free-shipping threshold.
func (f *Flow) Summary() Summary {
	subtotal := decimal.NewFromFloat(f.cart.TotalPrice())
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	shipping := decimal.NewFromFloat(flatShippingPrice)
	if subtotal.GreaterThan(decimal.NewFromFloat(freeShippingAbove)) {
		shipping = decimal.Zero
	}
	total := subtotal.Add(tax).Add(shipping).Round(2)
	return Summary{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// PlaceOrder runs the simulated order submission. It is only valid from the
// review step. On success the cart is cleared and the flow resets; on
// failure (cancellation mid-processing) everything is left unchanged so the
// caller can retry.
func (f *Flow) PlaceOrder(ctx context.Context) error {
	if f.step != StepReview {
		return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepReview, f.step)
	}
	if f.cart.ItemsCount() == 0 {
		return ErrEmptyCart
	}

	timer := time.NewTimer(orderProcessingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrOrderFailed, ctx.Err())
	case <-timer.C:
	}

	f.cart.Clear()
	f.step = StepShipping
	f.shipping = ShippingInfo{}
	f.payment = PaymentInfo{}
	return nil
}

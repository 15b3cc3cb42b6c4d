package donations

import "context"

// ChargeRequest describes one payment to collect.
type ChargeRequest struct {
	AmountCents int64
	Description string
	// Reference is the donation id, handed to the gateway for reconciliation.
	Reference string
}

// ChargeResult is a successful charge.
type ChargeResult struct {
	PaymentRef string
}

// PaymentGateway collects payments. Charge blocks on the provider, so callers
// run it on the background executor. A declined or failed charge is an error.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// QRGenerator renders a link as a QR code image.
type QRGenerator interface {
	Render(link string) ([]byte, error)
}

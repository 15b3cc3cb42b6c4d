package donations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SandboxGateway approves every charge without contacting a provider. It is
// the default for development and the test profile; production wires a real
// gateway behind the same port.
type SandboxGateway struct {
	log zerolog.Logger
}

func NewSandboxGateway(log zerolog.Logger) *SandboxGateway {
	return &SandboxGateway{log: log.With().Str("component", "payment-sandbox").Logger()}
}

func (g *SandboxGateway) Charge(_ context.Context, req ChargeRequest) (ChargeResult, error) {
	ref := fmt.Sprintf("sandbox_%s", uuid.NewString())
	g.log.Info().
		Int64("amount_cents", req.AmountCents).
		Str("reference", req.Reference).
		Str("payment_ref", ref).
		Msg("sandbox charge approved")
	return ChargeResult{PaymentRef: ref}, nil
}

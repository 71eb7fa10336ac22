// Package gateway defines the outbound port to external payment providers.
package gateway

import "context"

// InitializeResult is what a provider returns when a checkout is opened.
type InitializeResult struct {
	AuthorizationURL string
	Reference        string
	AccessCode       string
}

// PaymentGateway is implemented per provider in the infrastructure layer.
// Amounts are in major currency units; implementations convert to the
// provider's subunit where required.
type PaymentGateway interface {
	Name() string
	Initialize(ctx context.Context, email string, amount int64, currency, reference string) (*InitializeResult, error)
	// VerifySignature authenticates a webhook delivery against the raw
	// request body. Implementations must compare in constant time.
	VerifySignature(payload []byte, signature string) bool
}

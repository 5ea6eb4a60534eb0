package provider

import (
	"context"

	"github.com/nao1215/keywordstat/internal/model"
)

// Provider fetches keyword data for a batch of phrases.
//
// Design decision: We use an interface rather than a concrete type because
// the offline generator and the Wordstat API client have nothing in common
// beyond this contract, and the bot and CLI must treat them uniformly. The
// set of implementations is closed; this is not a plugin point.
type Provider interface {
	// Fetch returns one or more rows per input phrase. When withFrequency
	// is false every returned row has an absent frequency.
	//
	// The context bounds the whole operation. Implementations that poll
	// or perform I/O must respect cancellation.
	Fetch(ctx context.Context, phrases []string, withFrequency bool) ([]model.KeywordRow, error)

	// Name returns the provider name as shown to users (e.g. in the
	// document caption).
	Name() string
}

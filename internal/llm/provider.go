// Package llm assembles report content from external text-generation
// providers. Tier selects the generation strategy: tier 1 takes a single
// low-cost pass, paid tiers combine a primary analytical pass with a
// supplementary data-enrichment pass from a second provider.
package llm

import "context"

// Provider is a single text-generation backend. Implementations own their
// transport timeouts and any retry policy; this package never retries a
// provider call itself, so rate-limit and timeout errors propagate as plain
// generation failures.
type Provider interface {
	// Complete produces text for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

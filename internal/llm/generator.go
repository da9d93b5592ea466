package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Generator produces the body of a report for a given tier.
//
// Strategy by tier:
//   - tier 1: a single low-cost pass against Primary; no cross-provider
//     synthesis.
//   - tier >= 2: a primary analytical pass (Primary) plus a supplementary
//     data-enrichment pass (Enrichment), merged into one document body.
//
// The two paid-tier passes are independent calls. A failed enrichment pass
// degrades gracefully: the generator logs the cause and returns the primary
// output alone. A failed primary pass is always fatal.
type Generator struct {
	Primary    Provider
	Enrichment Provider
	Log        zerolog.Logger
}

// Generate builds the prompt from the supplied context maps and runs the
// tier-appropriate passes. It returns non-empty content or an error; there
// is no partial output on primary failure.
func (g *Generator) Generate(ctx context.Context, tier int, userData, marketData map[string]string) (string, error) {
	if g.Primary == nil {
		return "", fmt.Errorf("no primary provider configured")
	}

	prompt := buildPrompt(tier, userData, marketData)

	primary, err := g.Primary.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("primary generation pass (%s): %w", g.Primary.Name(), err)
	}
	primary = strings.TrimSpace(primary)
	if primary == "" {
		return "", fmt.Errorf("primary generation pass (%s) returned empty content", g.Primary.Name())
	}

	if tier < 2 || g.Enrichment == nil {
		return primary, nil
	}

	enriched, err := g.Enrichment.Complete(ctx, enrichmentPrompt(prompt))
	if err != nil {
		// Degrade to the primary output rather than failing the report.
		g.Log.Warn().
			Err(err).
			Str("provider", g.Enrichment.Name()).
			Int("tier", tier).
			Msg("enrichment pass failed, returning primary output only")
		return primary, nil
	}
	enriched = strings.TrimSpace(enriched)
	if enriched == "" {
		return primary, nil
	}

	return primary + "\n\n## Supplementary Market Data\n\n" + enriched, nil
}

// buildPrompt renders the generation instruction for the analytical pass.
// Context maps are flattened in key order so prompts are deterministic.
func buildPrompt(tier int, userData, marketData map[string]string) string {
	return fmt.Sprintf(
		"Generate a tier %d report for user data %s and market data %s. "+
			"Focus on analyzing potential investment opportunities, highlighting relevant metrics.",
		tier, flatten(userData), flatten(marketData),
	)
}

// enrichmentPrompt frames the supplementary pass around the same context.
func enrichmentPrompt(base string) string {
	return base + " Provide supplementary market data, recent trends, and comparable benchmarks."
}

func flatten(m map[string]string) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k, m[k])
	}
	b.WriteString("}")
	return b.String()
}

// Package rules holds the statically defined fix rules. Each rule pairs a
// fingerprint over aggregated CI logs with an idempotent text transform.
package rules

import "github.com/cifix/cifix/internal/domain"

// Default returns the rule set in evaluation order.
func Default() []domain.FixRule {
	return []domain.FixRule{
		SDKRoot{},
		GradleModelQuote{},
	}
}

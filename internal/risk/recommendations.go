package risk

import "github.com/volquant/crypto-vol-agent/pkg/types"

// recommendationTexts maps each risk level to its fixed advice strings. The
// mapping is deterministic: no randomness and no external model call. Any
// LLM-based narrative is a downstream decorator over the report, never a
// replacement for these.
var recommendationTexts = map[types.RiskLevel][]string{
	types.RiskLow: {
		"Volatility is low; the token is suitable for longer-term positioning.",
		"Standard position sizing applies.",
	},
	types.RiskMedium: {
		"Moderate volatility; suitable for medium-term positions.",
		"Keep stop-losses in place on open positions.",
	},
	types.RiskMediumHigh: {
		"Elevated volatility; favor short-term trades and reduced position sizes.",
		"Monitor the market closely for further volatility increases.",
	},
	types.RiskHigh: {
		"High volatility; trade cautiously with strict stop-losses and small positions.",
		"Consider waiting for volatility to subside before adding exposure.",
	},
}

// Recommendations returns the advice strings for a risk level. The returned
// slice is a copy; callers may not mutate the canonical texts.
func Recommendations(level types.RiskLevel) []string {
	texts, ok := recommendationTexts[level]
	if !ok {
		return nil
	}
	out := make([]string, len(texts))
	copy(out, texts)
	return out
}

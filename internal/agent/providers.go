package agent

import (
	"github.com/volquant/crypto-vol-agent/internal/config"
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/internal/narrative"
	"github.com/volquant/crypto-vol-agent/pkg/data"
)

// buildProvider selects the price provider named in the configuration and
// wraps it in a session cache.
func buildProvider(cfg config.Config) (data.PriceProvider, error) {
	var provider data.PriceProvider
	switch cfg.Provider {
	case "coingecko":
		provider = data.NewCoinGeckoProvider()
	case "bybit":
		provider = data.NewBybitProvider(data.BybitConfig{
			APIKey:    cfg.BybitAPIKey,
			APISecret: cfg.BybitAPISecret,
		})
	case "csv":
		provider = data.NewCSVProvider(cfg.DataDir)
	default:
		return nil, errors.NewInvalidParameter("provider", cfg.Provider, "must be coingecko, bybit or csv")
	}
	return data.NewCachedProvider(provider), nil
}

// buildCommentator returns the configured narrative client, or the no-op
// default when narrative output is disabled.
func buildCommentator(cfg config.Config) (narrative.Commentator, error) {
	if !cfg.Narrative.Enabled {
		return narrative.Disabled{}, nil
	}
	return narrative.NewDeepSeekClient(narrative.Config{
		BaseURL: cfg.Narrative.BaseURL,
		Model:   cfg.Narrative.Model,
		APIKey:  cfg.Narrative.APIKey,
	})
}

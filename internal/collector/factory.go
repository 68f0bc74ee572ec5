package collector

import (
	"fmt"

	"github.com/qepting91/linkscape/internal/config"
	"github.com/qepting91/linkscape/internal/domain"
)

// NewCollector selects the correct implementation based on the MODE
func NewCollector(cfg config.Config) (domain.Source, error) {
	switch cfg.Mode {
	case "api":
		return NewAPIClient(
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Username,
			cfg.Password,
			cfg.UserAgent,
			cfg.RequestInterval,
		)
	case "public":
		return NewPublicClient(cfg.BaseURL, cfg.UserAgent, cfg.RequestInterval, cfg.HTTPTimeout)
	case "mock":
		return NewMockClient(cfg.MockLatency), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.Mode)
	}
}

package bus

import (
	"fmt"

	"github.com/fiveshield/shieldcall/internal/domain"
)

// New creates an event bus from configuration. Single-node deployments
// use the in-process channel bus; replicated deployments use NATS.
func New(cfg domain.EventBusConfig) (domain.EventBus, error) {
	switch cfg.Type {
	case "channel":
		return NewChannelBus(cfg.ChannelBufferSize), nil

	case "nats":
		return NewNATSBus(cfg)

	default:
		return nil, fmt.Errorf("unsupported event bus type: %s", cfg.Type)
	}
}

package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/domain/events"
)

// EmitAll publishes committed events. Failures are logged and swallowed
// because the state they describe is already durable. A nil bus drops them.
func EmitAll(ctx context.Context, bus Bus, logger *slog.Logger, evts ...events.Event) {
	if bus == nil {
		return
	}
	for _, e := range evts {
		if err := bus.Emit(ctx, e); err != nil {
			logger.Warn("failed to emit event", "type", e.Type(), "error", err)
		}
	}
}

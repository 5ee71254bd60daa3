package app

import (
	"context"
	"log/slog"
)

// allChannelsClose returns a channel closed once every input channel is
// closed, or once ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.WarnContext(ctx, "context done while waiting for components",
					"ready", i,
					"total", len(chans),
				)

				return
			}
		}
	}()

	return out
}

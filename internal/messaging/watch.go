package messaging

import (
	"context"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/metrics"
	"github.com/rs/zerolog"
)

// watch emits build's snapshot once, then again after every signal on topic,
// until ctx is done. A failed build is logged and skipped; the subscription
// stays open. Snapshots finished after ctx is done are dropped.
func watch[T any](ctx context.Context, changes Changes, topic, kind string, log zerolog.Logger,
	build func(context.Context) (T, error), emit func(T) error,
) error {
	// subscribe before the first build so no change slips in between
	signals, unsubscribe := changes.Subscribe(topic)
	defer unsubscribe()

	metrics.Subscriptions.WithLabelValues(kind).Inc()
	defer metrics.Subscriptions.WithLabelValues(kind).Dec()

	for {
		snapshot, err := build(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			log.Warn().Err(err).Str("topic", topic).Msg("snapshot failed")
		default:
			if err := emit(snapshot); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-signals:
		}
	}
}

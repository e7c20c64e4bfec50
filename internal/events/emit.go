package events

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/metrics"
)

const publishTimeout = 5 * time.Second

// Emit publishes best effort: failures are logged and counted, never returned.
// The event's "type" field labels the metric.
func Emit(ctx context.Context, p Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	typ := fmt.Sprint(event["type"])
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		metrics.RecordEvent(topic, typ, false)
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "type", typ, "error", err)
		return
	}
	metrics.RecordEvent(topic, typ, true)
}

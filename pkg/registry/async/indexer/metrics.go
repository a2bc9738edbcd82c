package indexer

import (
	"context"
	"time"

	"github.com/code-payments/name-service/pkg/metrics"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

const (
	indexedMetricName             = "Indexer.Registrations.Indexed"
	registrationCountEventName    = "RegistrationCountPollingCheck"
	registrationCountPollInterval = 10 * time.Second
)

func (p *service) metricsGaugeWorker(ctx context.Context) error {
	delay := registrationCountPollInterval

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			start := time.Now()

			for _, kind := range []registration.Kind{registration.KindAccount, registration.KindToken} {
				p.recordRegistrationCountEvent(ctx, kind)
			}

			delay = registrationCountPollInterval - time.Since(start)
		}
	}
}

func (p *service) recordRegistrationCountEvent(ctx context.Context, kind registration.Kind) {
	count, err := p.registrations.Count(ctx, kind)
	if err != nil {
		return
	}

	metrics.RecordEvent(ctx, registrationCountEventName, map[string]interface{}{
		"count": count,
		"kind":  kind.String(),
	})
}

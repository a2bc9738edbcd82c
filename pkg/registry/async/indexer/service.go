package indexer

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/cache"
	"github.com/code-payments/name-service/pkg/registry/async"
	"github.com/code-payments/name-service/pkg/registry/data/account"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

// Programs are the deployed registry programs whose storage accounts are
// indexed
type Programs struct {
	AccountName ed25519.PublicKey
	TokenName   ed25519.PublicKey
}

type service struct {
	log           *logrus.Entry
	conf          *conf
	accounts      account.Store
	registrations registration.Store
	programs      Programs

	// Storage accounts known to be indexed
	indexed cache.Cache
}

// New returns a service that decodes committed registrations out of program
// owned storage accounts and saves them to the registration store
func New(accounts account.Store, registrations registration.Store, programs Programs, configProvider ConfigProvider) async.Service {
	conf := configProvider()
	return &service{
		log:           logrus.StandardLogger().WithField("service", "indexer"),
		conf:          conf,
		accounts:      accounts,
		registrations: registrations,
		programs:      programs,
		indexed:       cache.New(conf.cacheBudget(context.Background())),
	}
}

func (p *service) Start(ctx context.Context, interval time.Duration) error {
	go func() {
		err := p.worker(ctx, interval)
		if err != nil && err != context.Canceled {
			p.log.WithError(err).Warn("indexer loop terminated unexpectedly")
		}
	}()

	go func() {
		err := p.metricsGaugeWorker(ctx)
		if err != nil && err != context.Canceled {
			p.log.WithError(err).Warn("indexer metrics gauge loop terminated unexpectedly")
		}
	}()

	<-ctx.Done()
	return ctx.Err()
}

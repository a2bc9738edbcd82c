package indexer

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/metrics"
	"github.com/code-payments/name-service/pkg/registry/data/account"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
	"github.com/code-payments/name-service/pkg/retry"
)

type decoder func(program ed25519.PublicKey, record *account.Record) (*registration.Record, error)

func (p *service) worker(serviceCtx context.Context, interval time.Duration) error {
	delay := interval

	err := retry.Loop(
		func() (err error) {
			time.Sleep(delay)

			tracedCtx, end := metrics.StartTransaction(serviceCtx, "registry__indexer_service__index")
			defer end()

			indexed, err := p.indexAll(tracedCtx)
			if err != nil {
				return err
			}

			metrics.RecordCount(tracedCtx, indexedMetricName, indexed)
			return nil
		},
		retry.NonRetriableErrors(context.Canceled),
	)

	return err
}

// indexAll scans every account owned by the registry programs and saves the
// registrations that haven't been indexed yet. Storage accounts are
// write-once, so a scan never needs to revisit an indexed account.
func (p *service) indexAll(ctx context.Context) (uint64, error) {
	var total uint64
	for _, program := range []struct {
		key    ed25519.PublicKey
		decode decoder
	}{
		{p.programs.AccountName, decodeAccountName},
		{p.programs.TokenName, decodeTokenName},
	} {
		if len(program.key) == 0 {
			continue
		}

		indexed, err := p.indexProgram(ctx, program.key, program.decode)
		total += indexed
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *service) indexProgram(ctx context.Context, program ed25519.PublicKey, decode decoder) (uint64, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":  "indexProgram",
		"program": base58.Encode(program),
	})

	var indexed uint64
	var cursor uint64
	for {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		records, err := p.accounts.GetAllByOwner(ctx, base58.Encode(program), cursor, p.conf.pageSize(ctx))
		if err == account.ErrAccountNotFound {
			return indexed, nil
		} else if err != nil {
			log.WithError(err).Warn("failure getting program accounts")
			return indexed, err
		}

		for _, record := range records {
			cursor = record.Id

			ok, err := p.index(ctx, program, decode, record)
			if err != nil {
				log.WithError(err).WithField("storage", record.Address).Warn("failure indexing account")
				return indexed, err
			}
			if ok {
				indexed++
			}
		}
	}
}

func (p *service) index(ctx context.Context, program ed25519.PublicKey, decode decoder, record *account.Record) (bool, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":  "index",
		"storage": record.Address,
	})

	if _, ok := p.indexed.Retrieve(record.Address); ok {
		return false, nil
	}

	_, err := p.registrations.GetByStorageAccount(ctx, record.Address)
	if err == nil {
		p.markIndexed(record.Address)
		return false, nil
	} else if err != registration.ErrRegistrationNotFound {
		return false, err
	}

	decoded, err := decode(program, record)
	if err != nil {
		log.WithError(err).Debug("skipping undecodable account")
		return false, nil
	} else if decoded == nil {
		return false, nil
	}

	err = p.registrations.Put(ctx, decoded)
	if err == registration.ErrRegistrationExists {
		p.markIndexed(record.Address)
		return false, nil
	} else if err != nil {
		return false, err
	}
	p.markIndexed(record.Address)

	log.WithFields(logrus.Fields{
		"kind":  decoded.Kind.String(),
		"index": decoded.Index,
	}).Debug("indexed registration")
	return true, nil
}

func (p *service) markIndexed(storage string) {
	_ = p.indexed.Insert(storage, struct{}{}, 1)
}

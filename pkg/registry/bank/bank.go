package bank

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/metrics"
	"github.com/code-payments/name-service/pkg/registry/data/account"
	"github.com/code-payments/name-service/pkg/retry"
	"github.com/code-payments/name-service/pkg/retry/backoff"
	"github.com/code-payments/name-service/pkg/solana"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/solana/system"
	syncutil "github.com/code-payments/name-service/pkg/sync"
)

const (
	metricsStructName = "bank"

	executeDurationMetricName = "Bank.Execute.Duration"
	executeFailureEventName   = "BankExecuteFailure"

	saveRetryBaseDelay = 5 * time.Millisecond
	saveRetryMaxDelay  = 250 * time.Millisecond
)

var (
	ErrUnsupportedProgram       = solana.NewInstructionError(solana.InstructionErrorUnsupportedProgramID, "program is not registered")
	ErrMissingSignature         = solana.NewInstructionError(solana.InstructionErrorMissingRequiredSignature, "missing required signature")
	ErrProgramAlreadyRegistered = errors.New("program already registered")
	ErrBalanceOverflow          = solana.NewInstructionError(solana.InstructionErrorArithmeticOverflow, "balance overflow")
)

// Bank hosts programs over persistent account state. Each call to Execute is
// one all-or-nothing step: either every account change made by the program is
// saved, or none is.
type Bank struct {
	log  *logrus.Entry
	conf *conf

	accounts account.Store

	programsMu sync.RWMutex
	programs   map[string]runtime.Program

	locks *syncutil.StripedLock
}

// New returns a new Bank over the provided account store. The system program
// is always available.
func New(accounts account.Store, configProvider ConfigProvider) *Bank {
	conf := configProvider()

	b := &Bank{
		log:      logrus.StandardLogger().WithField("type", "registry/bank"),
		conf:     conf,
		accounts: accounts,
		programs: make(map[string]runtime.Program),
		locks:    syncutil.NewStripedLock(conf.lockStripeCount(context.Background())),
	}
	b.programs[string(system.ProgramKey)] = system.NewProcessor()
	return b
}

// RegisterProgram makes program available at programID
func (b *Bank) RegisterProgram(programID ed25519.PublicKey, program runtime.Program) error {
	b.programsMu.Lock()
	defer b.programsMu.Unlock()

	if _, ok := b.programs[string(programID)]; ok {
		return ErrProgramAlreadyRegistered
	}
	b.programs[string(programID)] = program
	return nil
}

// GetAccount returns the current state of an account.
//
// account.ErrAccountNotFound is returned if the account has never been saved.
func (b *Bank) GetAccount(ctx context.Context, address ed25519.PublicKey) (*runtime.AccountInfo, error) {
	mu := b.locks.Get(address)
	mu.RLock()
	defer mu.RUnlock()

	record, err := b.accounts.Get(ctx, base58.Encode(address))
	if err != nil {
		return nil, err
	}
	return toAccountInfo(record, solana.NewReadonlyAccountMeta(address, false))
}

// Airdrop credits lamports to an account out of thin air, creating it as a
// system account if needed
func (b *Bank) Airdrop(ctx context.Context, address ed25519.PublicKey, lamports uint64) error {
	log := b.log.WithFields(logrus.Fields{
		"method":   "Airdrop",
		"account":  base58.Encode(address),
		"lamports": lamports,
	})

	unlock := b.locks.LockAll(address)
	defer unlock()

	_, err := retry.Retry(
		func() error {
			record, err := b.accounts.Get(ctx, base58.Encode(address))
			if err == account.ErrAccountNotFound {
				record = &account.Record{
					Address: base58.Encode(address),
					Owner:   base58.Encode(system.ProgramKey),
				}
			} else if err != nil {
				return err
			}

			if record.Lamports > math.MaxUint64-lamports {
				return ErrBalanceOverflow
			}
			record.Lamports += lamports

			return b.accounts.Save(ctx, record)
		},
		retry.RetriableErrors(account.ErrStaleVersion, account.ErrAccountExists),
		retry.Limit(b.conf.saveAttempts(ctx)),
		retry.BackoffWithJitter(backoff.BinaryExponential(saveRetryBaseDelay), saveRetryMaxDelay, 0.1),
	)
	if err != nil {
		log.WithError(err).Warn("failure airdropping lamports")
		return err
	}
	return nil
}

// Execute runs a single instruction against the persisted accounts it
// references. Every account marked as a signer must have its private key in
// signers. Instructions touching overlapping accounts are serialized.
func (b *Bank) Execute(ctx context.Context, ix solana.Instruction, signers ...ed25519.PrivateKey) (err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Execute")
	defer tracer.End()

	start := time.Now()
	defer func() {
		metrics.RecordDuration(ctx, executeDurationMetricName, time.Since(start))
		if err != nil {
			tracer.OnError(err)
			metrics.RecordEvent(ctx, executeFailureEventName, map[string]interface{}{
				"program": base58.Encode(ix.Program),
				"error":   err.Error(),
			})
		}
	}()

	invocation := uuid.New().String()
	log := b.log.WithFields(logrus.Fields{
		"method":     "Execute",
		"invocation": invocation,
		"program":    base58.Encode(ix.Program),
	})
	tracer.AddAttributes(map[string]interface{}{
		"invocation": invocation,
		"program":    base58.Encode(ix.Program),
	})

	b.programsMu.RLock()
	program, ok := b.programs[string(ix.Program)]
	b.programsMu.RUnlock()
	if !ok {
		log.Debug("program is not registered")
		return ErrUnsupportedProgram
	}

	metas := ix.UniqueAccounts()
	if err := verifySigners(metas, signers); err != nil {
		log.WithError(err).Debug("instruction is missing a signature")
		return err
	}

	lockKeys := make([][]byte, len(metas))
	for i, meta := range metas {
		lockKeys[i] = meta.PublicKey
	}
	unlock := b.locks.LockAll(lockKeys...)
	defer unlock()

	_, err = retry.Retry(
		func() error {
			return b.execute(ctx, program, ix, metas)
		},
		retry.RetriableErrors(account.ErrStaleVersion, account.ErrAccountExists),
		retry.Limit(b.conf.saveAttempts(ctx)),
		retry.BackoffWithJitter(backoff.BinaryExponential(saveRetryBaseDelay), saveRetryMaxDelay, 0.1),
	)
	if err != nil {
		log.WithError(err).Debug("instruction failed")
		return err
	}

	log.Debug("instruction executed")
	return nil
}

func (b *Bank) execute(ctx context.Context, program runtime.Program, ix solana.Instruction, metas []solana.AccountMeta) error {
	loaded := make([]*account.Record, len(metas))
	infos := make([]*runtime.AccountInfo, len(metas))
	for i, meta := range metas {
		record, err := b.accounts.Get(ctx, base58.Encode(meta.PublicKey))
		switch err {
		case nil:
			loaded[i] = record
		case account.ErrAccountNotFound:
			record = &account.Record{
				Address: base58.Encode(meta.PublicKey),
				Owner:   base58.Encode(system.ProgramKey),
			}
		default:
			return err
		}

		infos[i], err = toAccountInfo(record, meta)
		if err != nil {
			return err
		}
	}

	// Duplicate references share the same AccountInfo
	accounts := make([]*runtime.AccountInfo, len(ix.Accounts))
	for i, ref := range ix.Accounts {
		for j, meta := range metas {
			if bytes.Equal(ref.PublicKey, meta.PublicKey) {
				accounts[i] = infos[j]
				break
			}
		}
	}

	if err := runtime.Invoke(program, ix.Program, accounts, ix.Data); err != nil {
		return err
	}

	var updates []*account.Record
	for i, info := range infos {
		updated := &account.Record{
			Address:  base58.Encode(info.Key),
			Owner:    base58.Encode(info.Owner),
			Lamports: info.Lamports,
			Data:     info.Data,
		}

		if loaded[i] == nil {
			if isEmptySystemAccount(info) {
				continue
			}
		} else {
			if loaded[i].IsEquivalent(updated) {
				continue
			}
			updated.Version = loaded[i].Version
		}

		updates = append(updates, updated)
	}

	if len(updates) == 0 {
		return nil
	}
	return b.accounts.Save(ctx, updates...)
}

func verifySigners(metas []solana.AccountMeta, signers []ed25519.PrivateKey) error {
	for _, meta := range metas {
		if !meta.IsSigner {
			continue
		}

		var found bool
		for _, signer := range signers {
			if bytes.Equal(signer.Public().(ed25519.PublicKey), meta.PublicKey) {
				found = true
				break
			}
		}
		if !found {
			return ErrMissingSignature
		}
	}
	return nil
}

func toAccountInfo(record *account.Record, meta solana.AccountMeta) (*runtime.AccountInfo, error) {
	owner, err := base58.Decode(record.Owner)
	if err != nil {
		return nil, err
	}

	data := make([]byte, len(record.Data))
	copy(data, record.Data)

	return &runtime.AccountInfo{
		Key:        meta.PublicKey,
		Owner:      owner,
		IsSigner:   meta.IsSigner,
		IsWritable: meta.IsWritable,
		Lamports:   record.Lamports,
		Data:       data,
	}, nil
}

func isEmptySystemAccount(info *runtime.AccountInfo) bool {
	return info.Lamports == 0 && len(info.Data) == 0 && info.IsOwnedBy(system.ProgramKey)
}

package processor

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

type accountNameProgram struct {
	log  *logrus.Entry
	conf *conf
}

// NewAccountNameProgram returns the program that registers a labelled address
// under the next sequential index of the counter the counter pointer names.
//
// Accounts, in order: payment, counter pointer, counter, storage.
func NewAccountNameProgram(configProvider ConfigProvider) runtime.Program {
	return &accountNameProgram{
		log:  logrus.StandardLogger().WithField("type", "processor/account_name"),
		conf: configProvider(),
	}
}

// Process implements runtime.Program.Process
func (p *accountNameProgram) Process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	log := p.log.WithFields(logrus.Fields{
		"method":  "Process",
		"program": base58.Encode(programID),
	})

	cfg, err := p.conf.load(context.Background())
	if err != nil {
		log.WithError(err).Warn("registration rejected due to invalid configuration")
		return ErrInvalidConfig
	}

	index, err := p.process(programID, accounts, data, cfg)
	if err != nil {
		log.WithError(err).Debug("registration rejected")
		return err
	}

	log.WithFields(logrus.Fields{
		"storage": base58.Encode(accounts[3].Key),
		"index":   index,
	}).Debug("registered account name")
	return nil
}

func (p *accountNameProgram) process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte, cfg Config) (uint64, error) {
	roles, err := nextAccounts(accounts, 4)
	if err != nil {
		return 0, err
	}
	payment, counterPointer, counter, storage := roles[0], roles[1], roles[2], roles[3]

	if err := validatePaymentAccount(payment, cfg); err != nil {
		return 0, err
	}

	if err := validateDistinct(payment, counterPointer, counter, storage); err != nil {
		return 0, err
	}

	state, err := resolveCounter(programID, counterPointer, counter, cfg)
	if err != nil {
		return 0, err
	}

	index, err := state.Increment()
	if err != nil {
		return 0, err
	}
	state.MarshalInto(counter.Data)

	var args nameservice.RegisterAccountInstructionArgs
	if err := args.Unmarshal(data); err != nil {
		return 0, err
	}

	if err := validateOwnedBy(storage, programID); err != nil {
		return 0, err
	}
	if err := validateDataSize(storage, nameservice.AccountRecordSize); err != nil {
		return 0, err
	}
	if err := validateEmptyFlag(storage, nameservice.AccountRecordFlagOffset); err != nil {
		return 0, err
	}

	if err := transferFee(storage, payment, cfg.RegistrationFee); err != nil {
		return 0, err
	}

	record := &nameservice.AccountRecord{
		Target:        args.Target,
		Label:         args.Label,
		IsInitialized: true,
		Index:         index,
	}
	record.MarshalInto(storage.Data)

	return index, nil
}

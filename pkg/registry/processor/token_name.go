package processor

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

type tokenNameProgram struct {
	log  *logrus.Entry
	conf *conf
}

// NewTokenNameProgram returns the program that lets a token's mint authority
// register a label for the token.
//
// Accounts, in order: payment, token, minter (signer), storage.
func NewTokenNameProgram(configProvider ConfigProvider) runtime.Program {
	return &tokenNameProgram{
		log:  logrus.StandardLogger().WithField("type", "processor/token_name"),
		conf: configProvider(),
	}
}

// Process implements runtime.Program.Process
func (p *tokenNameProgram) Process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	log := p.log.WithFields(logrus.Fields{
		"method":  "Process",
		"program": base58.Encode(programID),
	})

	cfg, err := p.conf.load(context.Background())
	if err != nil {
		log.WithError(err).Warn("registration rejected due to invalid configuration")
		return ErrInvalidConfig
	}

	err = p.process(programID, accounts, data, cfg)
	if err != nil {
		log.WithError(err).Debug("registration rejected")
		return err
	}

	log.WithFields(logrus.Fields{
		"token":   base58.Encode(accounts[1].Key),
		"storage": base58.Encode(accounts[3].Key),
	}).Debug("registered token name")
	return nil
}

func (p *tokenNameProgram) process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte, cfg Config) error {
	roles, err := nextAccounts(accounts, 4)
	if err != nil {
		return err
	}
	payment, tokenAccount, minter, storage := roles[0], roles[1], roles[2], roles[3]

	if err := validatePaymentAccount(payment, cfg); err != nil {
		return err
	}

	if err := validateDistinct(payment, tokenAccount, minter, storage); err != nil {
		return err
	}

	if err := validateMinter(tokenAccount, minter, cfg); err != nil {
		return err
	}

	var args nameservice.RegisterTokenInstructionArgs
	if err := args.Unmarshal(data); err != nil {
		return err
	}

	if err := validateOwnedBy(storage, programID); err != nil {
		return err
	}
	if err := validateDataSize(storage, nameservice.RegisterSize); err != nil {
		return err
	}
	if err := validateEmptySpan(storage, nameservice.RegisterSize); err != nil {
		return err
	}

	if err := transferFee(storage, payment, cfg.RegistrationFee); err != nil {
		return err
	}

	register := &nameservice.Register{
		Token: tokenAccount.Key,
		Label: args.Label,
	}
	register.MarshalInto(storage.Data)

	return nil
}

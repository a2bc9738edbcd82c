package processor

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
)

type proxyPointerProgram struct {
	log *logrus.Entry
}

// NewProxyPointerProgram returns the program that initializes a pointer to an
// arbitrary address. Pointers are free and can only be set once.
//
// Accounts: pointer storage.
func NewProxyPointerProgram() runtime.Program {
	return &proxyPointerProgram{
		log: logrus.StandardLogger().WithField("type", "processor/proxy_pointer"),
	}
}

// Process implements runtime.Program.Process
func (p *proxyPointerProgram) Process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	log := p.log.WithFields(logrus.Fields{
		"method":  "Process",
		"program": base58.Encode(programID),
	})

	err := p.process(programID, accounts, data)
	if err != nil {
		log.WithError(err).Debug("pointer rejected")
		return err
	}

	log.WithField("storage", base58.Encode(accounts[0].Key)).Debug("pointer set")
	return nil
}

func (p *proxyPointerProgram) process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	roles, err := nextAccounts(accounts, 1)
	if err != nil {
		return err
	}
	storage := roles[0]

	var args nameservice.SetPointerInstructionArgs
	if err := args.Unmarshal(data); err != nil {
		return err
	}

	if err := validateOwnedBy(storage, programID); err != nil {
		return err
	}
	if err := validateDataSize(storage, nameservice.PointerSize); err != nil {
		return err
	}
	if err := validateEmptyFlag(storage, nameservice.PointerFlagOffset); err != nil {
		return err
	}

	pointer := &nameservice.Pointer{
		Target:        args.Target,
		IsInitialized: true,
	}
	pointer.MarshalInto(storage.Data)

	return nil
}

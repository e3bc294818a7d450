package processor

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/echo-program/pkg/solana"
	"github.com/code-payments/echo-program/pkg/solana/echo"
	"github.com/code-payments/echo-program/pkg/solana/token"
)

// Account positions are fixed per instruction; position 0 is always the
// target buffer. All checks run before any handler mutates anything.

type echoAccounts struct {
	EchoBuffer *Account
}

func validateEchoAccounts(accounts []*Account) (*echoAccounts, error) {
	if len(accounts) < 1 {
		return nil, ErrNotEnoughAccountKeys
	}

	if !accounts[0].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "echo buffer is not writable")
	}

	return &echoAccounts{
		EchoBuffer: accounts[0],
	}, nil
}

type initializeAuthorizedEchoAccounts struct {
	AuthorizedBuffer *Account
	Authority        *Account
}

func validateInitializeAuthorizedEchoAccounts(accounts []*Account) (*initializeAuthorizedEchoAccounts, error) {
	if len(accounts) < 3 {
		return nil, ErrNotEnoughAccountKeys
	}

	if !accounts[0].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "authorized buffer is not writable")
	}
	if !accounts[1].IsSigner {
		return nil, errors.Wrap(ErrUnauthorized, "authority did not sign")
	}
	if !bytes.Equal(accounts[2].Key, echo.SYSTEM_PROGRAM_ID) {
		return nil, solana.ErrIncorrectProgram
	}

	return &initializeAuthorizedEchoAccounts{
		AuthorizedBuffer: accounts[0],
		Authority:        accounts[1],
	}, nil
}

type authorizedEchoAccounts struct {
	AuthorizedBuffer *Account
	Authority        *Account
}

func validateAuthorizedEchoAccounts(programID []byte, accounts []*Account) (*authorizedEchoAccounts, error) {
	if len(accounts) < 2 {
		return nil, ErrNotEnoughAccountKeys
	}

	if !accounts[0].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "authorized buffer is not writable")
	}
	if !bytes.Equal(accounts[0].Owner, programID) {
		return nil, errors.Wrap(ErrUnauthorized, "authorized buffer is not owned by the echo program")
	}
	if !accounts[1].IsSigner {
		return nil, errors.Wrap(ErrUnauthorized, "authority did not sign")
	}

	return &authorizedEchoAccounts{
		AuthorizedBuffer: accounts[0],
		Authority:        accounts[1],
	}, nil
}

type initializeVendingMachineEchoAccounts struct {
	VendingMachineBuffer *Account
	VendingMachineMint   *Account
	Payer                *Account
}

func validateInitializeVendingMachineEchoAccounts(accounts []*Account) (*initializeVendingMachineEchoAccounts, error) {
	if len(accounts) < 4 {
		return nil, ErrNotEnoughAccountKeys
	}

	if !accounts[0].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "vending machine buffer is not writable")
	}
	if !accounts[2].IsSigner {
		return nil, errors.Wrap(ErrUnauthorized, "payer did not sign")
	}
	if !bytes.Equal(accounts[3].Key, echo.SYSTEM_PROGRAM_ID) {
		return nil, solana.ErrIncorrectProgram
	}

	return &initializeVendingMachineEchoAccounts{
		VendingMachineBuffer: accounts[0],
		VendingMachineMint:   accounts[1],
		Payer:                accounts[2],
	}, nil
}

type vendingMachineEchoAccounts struct {
	VendingMachineBuffer *Account
	User                 *Account
	UserTokenAccount     *Account
	VendingMachineMint   *Account
}

func validateVendingMachineEchoAccounts(programID []byte, accounts []*Account) (*vendingMachineEchoAccounts, error) {
	if len(accounts) < 5 {
		return nil, ErrNotEnoughAccountKeys
	}

	if !accounts[0].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "vending machine buffer is not writable")
	}
	if !bytes.Equal(accounts[0].Owner, programID) {
		return nil, errors.Wrap(ErrUnauthorized, "vending machine buffer is not owned by the echo program")
	}
	if !accounts[1].IsSigner {
		return nil, errors.Wrap(ErrUnauthorized, "user did not sign")
	}
	if !accounts[2].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "user token account is not writable")
	}
	if !accounts[3].IsWritable {
		return nil, errors.Wrap(ErrUnauthorized, "mint is not writable")
	}
	if !bytes.Equal(accounts[4].Key, token.ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	return &vendingMachineEchoAccounts{
		VendingMachineBuffer: accounts[0],
		User:                 accounts[1],
		UserTokenAccount:     accounts[2],
		VendingMachineMint:   accounts[3],
	}, nil
}

package processor

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/echo-program/pkg/solana/echo"
	"github.com/code-payments/echo-program/pkg/solana/token"
)

// Processor executes echo program instructions against the accounts a
// transaction supplies. Each call to Process is a single atomic unit:
// every precondition is checked before the first byte of account data is
// touched, so a failed instruction leaves all accounts byte-for-byte
// unchanged.
type Processor struct {
	log       *logrus.Entry
	programID ed25519.PublicKey
	allocator Allocator
	burner    TokenBurner
}

func NewProcessor(allocator Allocator, burner TokenBurner) *Processor {
	return &Processor{
		log:       logrus.StandardLogger().WithField("program", "echo"),
		programID: echo.PROGRAM_ID,
		allocator: allocator,
		burner:    burner,
	}
}

// Process decodes raw instruction data and dispatches it to the handler
// for the decoded command.
func (p *Processor) Process(data []byte, accounts []*Account) error {
	command, err := echo.GetCommand(data)
	if err != nil {
		return err
	}

	log := p.log.WithField("command", command.String())

	switch command {
	case echo.CommandEcho:
		var args echo.EchoInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processEcho(log, &args, accounts)
	case echo.CommandInitializeAuthorizedEcho:
		var args echo.InitializeAuthorizedEchoInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processInitializeAuthorizedEcho(log, &args, accounts)
	case echo.CommandAuthorizedEcho:
		var args echo.AuthorizedEchoInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processAuthorizedEcho(log, &args, accounts)
	case echo.CommandInitializeVendingMachineEcho:
		var args echo.InitializeVendingMachineEchoInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processInitializeVendingMachineEcho(log, &args, accounts)
	case echo.CommandVendingMachineEcho:
		var args echo.VendingMachineEchoInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processVendingMachineEcho(log, &args, accounts)
	default:
		return echo.ErrInvalidInstructionData
	}
}

func (p *Processor) processEcho(log *logrus.Entry, args *echo.EchoInstructionArgs, accounts []*Account) error {
	validated, err := validateEchoAccounts(accounts)
	if err != nil {
		return err
	}

	// A non-zero byte means someone already wrote here. Refusing the write
	// keeps an open buffer single-use.
	for _, b := range validated.EchoBuffer.Data {
		if b != 0 {
			return ErrBufferNotEmpty
		}
	}

	n := copyCapped(validated.EchoBuffer.Data, args.Data)

	log.WithField("copied", n).Debug("echoed into open buffer")
	return nil
}

func (p *Processor) processInitializeAuthorizedEcho(log *logrus.Entry, args *echo.InitializeAuthorizedEchoInstructionArgs, accounts []*Account) error {
	validated, err := validateInitializeAuthorizedEchoAccounts(accounts)
	if err != nil {
		return err
	}

	if bytes.Equal(validated.AuthorizedBuffer.Owner, p.programID) {
		return ErrAlreadyInitialized
	}
	if args.Capacity <= echo.BufferHeaderSize {
		return errors.Wrapf(echo.ErrInvalidInstructionData, "capacity %d leaves no payload region", args.Capacity)
	}

	address, bump, err := echo.GetAuthorizedBufferAddress(&echo.GetAuthorizedBufferAddressArgs{
		Authority: validated.Authority.Key,
		Seed:      args.Seed,
	})
	if err != nil {
		return errors.Wrap(err, "failed to derive buffer address")
	}
	if !bytes.Equal(address, validated.AuthorizedBuffer.Key) {
		return ErrInvalidDerivedAddress
	}

	if err := p.allocator.Allocate(validated.AuthorizedBuffer, args.Capacity, p.programID); err != nil {
		return errors.Wrap(err, "failed to allocate buffer account")
	}

	// Seed the header in the same instruction as the allocation. An
	// allocated-but-unseeded buffer would be indistinguishable from an
	// unclaimed one and would pass any caller's authority check.
	header := echo.BufferHeader{
		Bump:          bump,
		Discriminator: args.Seed,
	}
	copyCapped(validated.AuthorizedBuffer.Data, header.Marshal())

	log.WithFields(logrus.Fields{
		"seed":     args.Seed,
		"capacity": args.Capacity,
	}).Debug("initialized authorized buffer")
	return nil
}

func (p *Processor) processAuthorizedEcho(log *logrus.Entry, args *echo.AuthorizedEchoInstructionArgs, accounts []*Account) error {
	validated, err := validateAuthorizedEchoAccounts(p.programID, accounts)
	if err != nil {
		return err
	}

	var header echo.BufferHeader
	if err := header.Unmarshal(validated.AuthorizedBuffer.Data); err != nil {
		return err
	}

	// Re-deriving with the supplied authority is the authorization check:
	// any other caller's key produces a different address.
	address, bump, err := echo.GetAuthorizedBufferAddress(&echo.GetAuthorizedBufferAddressArgs{
		Authority: validated.Authority.Key,
		Seed:      header.Discriminator,
	})
	if err != nil {
		return errors.Wrap(err, "failed to derive buffer address")
	}
	if !bytes.Equal(address, validated.AuthorizedBuffer.Key) {
		return ErrInvalidDerivedAddress
	}
	if bump != header.Bump {
		return ErrInvalidDerivedAddress
	}

	n := writePayload(validated.AuthorizedBuffer, args.Data)

	log.WithField("copied", n).Debug("echoed into authorized buffer")
	return nil
}

func (p *Processor) processInitializeVendingMachineEcho(log *logrus.Entry, args *echo.InitializeVendingMachineEchoInstructionArgs, accounts []*Account) error {
	validated, err := validateInitializeVendingMachineEchoAccounts(accounts)
	if err != nil {
		return err
	}

	if bytes.Equal(validated.VendingMachineBuffer.Owner, p.programID) {
		return ErrAlreadyInitialized
	}
	if args.Capacity <= echo.BufferHeaderSize {
		return errors.Wrapf(echo.ErrInvalidInstructionData, "capacity %d leaves no payload region", args.Capacity)
	}

	address, bump, err := echo.GetVendingMachineBufferAddress(&echo.GetVendingMachineBufferAddressArgs{
		Mint:  validated.VendingMachineMint.Key,
		Price: args.Price,
	})
	if err != nil {
		return errors.Wrap(err, "failed to derive buffer address")
	}
	if !bytes.Equal(address, validated.VendingMachineBuffer.Key) {
		return ErrInvalidDerivedAddress
	}

	if err := p.allocator.Allocate(validated.VendingMachineBuffer, args.Capacity, p.programID); err != nil {
		return errors.Wrap(err, "failed to allocate buffer account")
	}

	header := echo.BufferHeader{
		Bump:          bump,
		Discriminator: args.Price,
	}
	copyCapped(validated.VendingMachineBuffer.Data, header.Marshal())

	log.WithFields(logrus.Fields{
		"price":    args.Price,
		"capacity": args.Capacity,
	}).Debug("initialized vending machine buffer")
	return nil
}

func (p *Processor) processVendingMachineEcho(log *logrus.Entry, args *echo.VendingMachineEchoInstructionArgs, accounts []*Account) error {
	validated, err := validateVendingMachineEchoAccounts(p.programID, accounts)
	if err != nil {
		return err
	}

	var source token.Account
	if !source.Unmarshal(validated.UserTokenAccount.Data) {
		return errors.Wrap(echo.ErrInvalidAccountData, "user token account")
	}
	if !bytes.Equal(source.Mint, validated.VendingMachineMint.Key) {
		return ErrMintMismatch
	}

	var header echo.BufferHeader
	if err := header.Unmarshal(validated.VendingMachineBuffer.Data); err != nil {
		return err
	}

	address, bump, err := echo.GetVendingMachineBufferAddress(&echo.GetVendingMachineBufferAddressArgs{
		Mint:  validated.VendingMachineMint.Key,
		Price: header.Discriminator,
	})
	if err != nil {
		return errors.Wrap(err, "failed to derive buffer address")
	}
	if !bytes.Equal(address, validated.VendingMachineBuffer.Key) {
		return ErrInvalidDerivedAddress
	}
	if bump != header.Bump {
		return ErrInvalidDerivedAddress
	}

	// Payment strictly precedes mutation. A failed burn aborts the whole
	// instruction with the payload untouched.
	price := header.Discriminator
	if err := p.burner.Burn(validated.UserTokenAccount, validated.VendingMachineMint, validated.User, price); err != nil {
		return errors.Wrap(err, "failed to burn payment")
	}

	n := writePayload(validated.VendingMachineBuffer, args.Data)

	log.WithFields(logrus.Fields{
		"price":  price,
		"copied": n,
	}).Debug("echoed into vending machine buffer")
	return nil
}

// copyCapped copies min(len(dst), len(src)) bytes from src into dst,
// truncating silently. It never allocates.
func copyCapped(dst, src []byte) int {
	return copy(dst, src)
}

// writePayload zeroes the payload region behind the header and then copies
// as much of data as fits. Zeroing first makes every write idempotent with
// respect to whatever bytes a previous write left behind; the header is
// never touched.
func writePayload(buffer *Account, data []byte) int {
	payload := buffer.Data[echo.BufferHeaderSize:]
	for i := range payload {
		payload[i] = 0
	}

	return copyCapped(payload, data)
}

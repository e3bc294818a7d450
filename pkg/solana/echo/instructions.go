package echo

import (
	"crypto/ed25519"

	"github.com/code-payments/echo-program/pkg/solana"
	"github.com/code-payments/echo-program/pkg/solana/binary"
)

type Command uint32

const (
	CommandEcho Command = iota
	CommandInitializeAuthorizedEcho
	CommandAuthorizedEcho
	CommandInitializeVendingMachineEcho
	CommandVendingMachineEcho
)

const commandSize = 4

func (c Command) String() string {
	switch c {
	case CommandEcho:
		return "echo"
	case CommandInitializeAuthorizedEcho:
		return "initialize_authorized_echo"
	case CommandAuthorizedEcho:
		return "authorized_echo"
	case CommandInitializeVendingMachineEcho:
		return "initialize_vending_machine_echo"
	case CommandVendingMachineEcho:
		return "vending_machine_echo"
	default:
		return "unknown"
	}
}

// GetCommand reads the u32-LE command tag off the front of raw instruction
// data.
func GetCommand(data []byte) (Command, error) {
	var offset int
	var command uint32
	if !binary.GetUint32(data, &command, &offset) {
		return 0, ErrInvalidInstructionData
	}
	return Command(command), nil
}

func putCommand(dst []byte, v Command, offset *int) {
	binary.PutUint32(dst, uint32(v), offset)
}

func checkCommand(data []byte, expected Command, offset *int) error {
	var command uint32
	if !binary.GetUint32(data, &command, offset) {
		return ErrInvalidInstructionData
	}
	if Command(command) != expected {
		return ErrInvalidInstructionData
	}
	return nil
}

type EchoInstructionArgs struct {
	Data []byte
}

type EchoInstructionAccounts struct {
	EchoBuffer ed25519.PublicKey
}

func (args *EchoInstructionArgs) Marshal() []byte {
	var offset int
	data := make([]byte, commandSize+4+len(args.Data))

	putCommand(data, CommandEcho, &offset)
	binary.PutBytes(data, args.Data, &offset)

	return data
}

func (args *EchoInstructionArgs) Unmarshal(data []byte) error {
	var offset int
	if err := checkCommand(data, CommandEcho, &offset); err != nil {
		return err
	}
	if !binary.GetBytes(data, &args.Data, &offset) {
		return ErrInvalidInstructionData
	}
	return nil
}

func NewEchoInstruction(
	accounts *EchoInstructionAccounts,
	args *EchoInstructionArgs,
) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ADDRESS,
		args.Marshal(),
		solana.NewAccountMeta(accounts.EchoBuffer, false),
	)
}

type InitializeAuthorizedEchoInstructionArgs struct {
	Seed     uint64
	Capacity uint64
}

type InitializeAuthorizedEchoInstructionAccounts struct {
	AuthorizedBuffer ed25519.PublicKey
	Authority        ed25519.PublicKey
}

func (args *InitializeAuthorizedEchoInstructionArgs) Marshal() []byte {
	var offset int
	data := make([]byte, commandSize+8+8)

	putCommand(data, CommandInitializeAuthorizedEcho, &offset)
	binary.PutUint64(data, args.Seed, &offset)
	binary.PutUint64(data, args.Capacity, &offset)

	return data
}

func (args *InitializeAuthorizedEchoInstructionArgs) Unmarshal(data []byte) error {
	var offset int
	if err := checkCommand(data, CommandInitializeAuthorizedEcho, &offset); err != nil {
		return err
	}
	if !binary.GetUint64(data, &args.Seed, &offset) {
		return ErrInvalidInstructionData
	}
	if !binary.GetUint64(data, &args.Capacity, &offset) {
		return ErrInvalidInstructionData
	}
	return nil
}

func NewInitializeAuthorizedEchoInstruction(
	accounts *InitializeAuthorizedEchoInstructionAccounts,
	args *InitializeAuthorizedEchoInstructionArgs,
) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ADDRESS,
		args.Marshal(),
		solana.NewAccountMeta(accounts.AuthorizedBuffer, false),
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type AuthorizedEchoInstructionArgs struct {
	Data []byte
}

type AuthorizedEchoInstructionAccounts struct {
	AuthorizedBuffer ed25519.PublicKey
	Authority        ed25519.PublicKey
}

func (args *AuthorizedEchoInstructionArgs) Marshal() []byte {
	var offset int
	data := make([]byte, commandSize+4+len(args.Data))

	putCommand(data, CommandAuthorizedEcho, &offset)
	binary.PutBytes(data, args.Data, &offset)

	return data
}

func (args *AuthorizedEchoInstructionArgs) Unmarshal(data []byte) error {
	var offset int
	if err := checkCommand(data, CommandAuthorizedEcho, &offset); err != nil {
		return err
	}
	if !binary.GetBytes(data, &args.Data, &offset) {
		return ErrInvalidInstructionData
	}
	return nil
}

func NewAuthorizedEchoInstruction(
	accounts *AuthorizedEchoInstructionAccounts,
	args *AuthorizedEchoInstructionArgs,
) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ADDRESS,
		args.Marshal(),
		solana.NewAccountMeta(accounts.AuthorizedBuffer, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
	)
}

type InitializeVendingMachineEchoInstructionArgs struct {
	Price    uint64
	Capacity uint64
}

type InitializeVendingMachineEchoInstructionAccounts struct {
	VendingMachineBuffer ed25519.PublicKey
	VendingMachineMint   ed25519.PublicKey
	Payer                ed25519.PublicKey
}

func (args *InitializeVendingMachineEchoInstructionArgs) Marshal() []byte {
	var offset int
	data := make([]byte, commandSize+8+8)

	putCommand(data, CommandInitializeVendingMachineEcho, &offset)
	binary.PutUint64(data, args.Price, &offset)
	binary.PutUint64(data, args.Capacity, &offset)

	return data
}

func (args *InitializeVendingMachineEchoInstructionArgs) Unmarshal(data []byte) error {
	var offset int
	if err := checkCommand(data, CommandInitializeVendingMachineEcho, &offset); err != nil {
		return err
	}
	if !binary.GetUint64(data, &args.Price, &offset) {
		return ErrInvalidInstructionData
	}
	if !binary.GetUint64(data, &args.Capacity, &offset) {
		return ErrInvalidInstructionData
	}
	return nil
}

func NewInitializeVendingMachineEchoInstruction(
	accounts *InitializeVendingMachineEchoInstructionAccounts,
	args *InitializeVendingMachineEchoInstructionArgs,
) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ADDRESS,
		args.Marshal(),
		solana.NewAccountMeta(accounts.VendingMachineBuffer, false),
		solana.NewReadonlyAccountMeta(accounts.VendingMachineMint, false),
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type VendingMachineEchoInstructionArgs struct {
	Data []byte
}

type VendingMachineEchoInstructionAccounts struct {
	VendingMachineBuffer ed25519.PublicKey
	User                 ed25519.PublicKey
	UserTokenAccount     ed25519.PublicKey
	VendingMachineMint   ed25519.PublicKey
}

func (args *VendingMachineEchoInstructionArgs) Marshal() []byte {
	var offset int
	data := make([]byte, commandSize+4+len(args.Data))

	putCommand(data, CommandVendingMachineEcho, &offset)
	binary.PutBytes(data, args.Data, &offset)

	return data
}

func (args *VendingMachineEchoInstructionArgs) Unmarshal(data []byte) error {
	var offset int
	if err := checkCommand(data, CommandVendingMachineEcho, &offset); err != nil {
		return err
	}
	if !binary.GetBytes(data, &args.Data, &offset) {
		return ErrInvalidInstructionData
	}
	return nil
}

func NewVendingMachineEchoInstruction(
	accounts *VendingMachineEchoInstructionAccounts,
	args *VendingMachineEchoInstructionArgs,
) solana.Instruction {
	return solana.NewInstruction(
		PROGRAM_ADDRESS,
		args.Marshal(),
		solana.NewAccountMeta(accounts.VendingMachineBuffer, false),
		solana.NewReadonlyAccountMeta(accounts.User, true),
		solana.NewAccountMeta(accounts.UserTokenAccount, false),
		solana.NewAccountMeta(accounts.VendingMachineMint, false),
		solana.NewReadonlyAccountMeta(SPL_TOKEN_PROGRAM_ID, false),
	)
}

package echo

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/code-payments/echo-program/pkg/solana"
)

type GetAuthorizedBufferAddressArgs struct {
	Authority ed25519.PublicKey
	Seed      uint64
}

// GetAuthorizedBufferAddress derives the PDA for an authorized echo buffer.
// The authority key is part of the seed tuple, so each authority maps to its
// own buffer for a given seed and no stored owner pointer is needed.
func GetAuthorizedBufferAddress(args *GetAuthorizedBufferAddressArgs) (ed25519.PublicKey, uint8, error) {
	seedBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(seedBytes, args.Seed)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		AuthorityPrefix,
		args.Authority,
		seedBytes,
	)
}

type GetVendingMachineBufferAddressArgs struct {
	Mint  ed25519.PublicKey
	Price uint64
}

// GetVendingMachineBufferAddress derives the PDA for a vending machine echo
// buffer. The mint and price are the seed tuple, so one buffer exists per
// (mint, price) pair.
func GetVendingMachineBufferAddress(args *GetVendingMachineBufferAddressArgs) (ed25519.PublicKey, uint8, error) {
	priceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(priceBytes, args.Price)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VendingMachinePrefix,
		args.Mint,
		priceBytes,
	)
}

package processor

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/echo-program/pkg/solana/token"
)

// Allocator is the account allocation facility. On success the account
// holds size zeroed bytes and is owned by the provided program.
//
// Allocation is only ever requested by the two initialize handlers, after
// all validation has passed.
type Allocator interface {
	Allocate(account *Account, size uint64, owner ed25519.PublicKey) error
}

// TokenBurner irreversibly reduces a token balance. A successful burn is
// the vending machine handler's proof of payment; any error must leave the
// token account unchanged.
type TokenBurner interface {
	Burn(tokenAccount, mint, authority *Account, amount uint64) error
}

type systemAllocator struct {
}

// NewSystemAllocator returns an Allocator with system program semantics:
// accounts that already hold data cannot be allocated again.
func NewSystemAllocator() Allocator {
	return &systemAllocator{}
}

func (a *systemAllocator) Allocate(account *Account, size uint64, owner ed25519.PublicKey) error {
	if len(account.Data) > 0 {
		return errors.Errorf("account %s already in use", account.String())
	}

	account.Data = make([]byte, size)
	account.Owner = owner
	return nil
}

type splTokenBurner struct {
}

// NewSplTokenBurner returns a TokenBurner operating directly on SPL token
// account and mint state blobs.
func NewSplTokenBurner() TokenBurner {
	return &splTokenBurner{}
}

func (b *splTokenBurner) Burn(tokenAccount, mint, authority *Account, amount uint64) error {
	var source token.Account
	if !source.Unmarshal(tokenAccount.Data) {
		return token.ErrorUninitializedState
	}
	if source.State != token.AccountStateInitialized {
		return token.ErrorUninitializedState
	}
	if !bytes.Equal(source.Mint, mint.Key) {
		return token.ErrorMintMismatch
	}
	if !bytes.Equal(source.Owner, authority.Key) {
		return token.ErrorOwnerMismatch
	}
	if !authority.IsSigner {
		return errors.Wrap(ErrUnauthorized, "burn authority did not sign")
	}
	if source.Amount < amount {
		return token.ErrorInsufficientFunds
	}

	var state token.Mint
	if !state.Unmarshal(mint.Data) {
		return token.ErrorUninitializedState
	}

	source.Amount -= amount
	state.Supply -= amount

	copy(tokenAccount.Data, source.Marshal())
	copy(mint.Data, state.Marshal())
	return nil
}

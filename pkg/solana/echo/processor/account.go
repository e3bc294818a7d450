package processor

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// Account is the runtime view of a ledger account handed to the processor
// for a single instruction. The processor never creates or destroys
// accounts; it only validates them and mutates Data.
type Account struct {
	Key        ed25519.PublicKey
	Owner      ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Data       []byte
}

func (a *Account) String() string {
	return fmt.Sprintf(
		"Account{key=%s,owner=%s,signer=%t,writable=%t,len=%d}",
		base58.Encode(a.Key),
		base58.Encode(a.Owner),
		a.IsSigner,
		a.IsWritable,
		len(a.Data),
	)
}

package echo

import (
	"fmt"

	"github.com/code-payments/echo-program/pkg/solana/binary"
)

// BufferHeaderSize is the fixed header prefixed to every access-controlled
// echo buffer: the PDA bump, followed by the u64 discriminator (the seed for
// authorized buffers, the price for vending machine buffers).
const BufferHeaderSize = (1 + // bump
	8) // discriminator

type BufferHeader struct {
	Bump          uint8
	Discriminator uint64
}

func (obj *BufferHeader) Marshal() []byte {
	b := make([]byte, BufferHeaderSize)

	var offset int
	binary.PutUint8(b, obj.Bump, &offset)
	binary.PutUint64(b, obj.Discriminator, &offset)

	return b
}

func (obj *BufferHeader) Unmarshal(data []byte) error {
	if len(data) < BufferHeaderSize {
		return ErrInvalidAccountData
	}

	var offset int
	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetUint64(data, &obj.Discriminator, &offset)

	return nil
}

func (obj *BufferHeader) String() string {
	return fmt.Sprintf(
		"BufferHeader{bump=%d,discriminator=%d}",
		obj.Bump,
		obj.Discriminator,
	)
}

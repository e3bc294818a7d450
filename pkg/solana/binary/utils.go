package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:], src)
	*offset += ed25519.PublicKeySize
}

func PutOptionalKey32(dst []byte, src []byte, offset *int, optionSize int) {
	if len(src) > 0 {
		dst[*offset] = 1
		copy(dst[*offset+optionSize:], src)
	}

	*offset += optionSize + ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func PutOptionalUint64(dst []byte, v *uint64, offset *int, optionSize int) {
	if v != nil {
		dst[*offset] = 1
		binary.LittleEndian.PutUint64(dst[*offset+optionSize:], *v)
	}
	*offset += optionSize + 8
}

// PutBytes writes a u32-LE length prefix followed by the raw bytes.
func PutBytes(dst []byte, src []byte, offset *int) {
	PutUint32(dst, uint32(len(src)), offset)
	copy(dst[*offset:], src)
	*offset += len(src)
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) bool {
	if len(src) < *offset+ed25519.PublicKeySize {
		return false
	}

	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return true
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) bool {
	if len(src) < *offset+optionSize+ed25519.PublicKeySize {
		return false
	}

	if src[*offset] == 1 {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[*offset+optionSize:])
	}
	*offset += optionSize + ed25519.PublicKeySize
	return true
}

func GetUint64(src []byte, dst *uint64, offset *int) bool {
	if len(src) < *offset+8 {
		return false
	}

	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return true
}

func GetUint32(src []byte, dst *uint32, offset *int) bool {
	if len(src) < *offset+4 {
		return false
	}

	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return true
}

func GetUint8(src []byte, dst *uint8, offset *int) bool {
	if len(src) < *offset+1 {
		return false
	}

	*dst = src[*offset]
	*offset += 1
	return true
}

func GetOptionalUint64(src []byte, dst **uint64, offset *int, optionSize int) bool {
	if len(src) < *offset+optionSize+8 {
		return false
	}

	if src[*offset] == 1 {
		val := binary.LittleEndian.Uint64(src[*offset+optionSize:])
		*dst = &val
	}
	*offset += optionSize + 8
	return true
}

// GetBytes reads a u32-LE length prefix followed by that many raw bytes.
// The returned slice is a copy.
func GetBytes(src []byte, dst *[]byte, offset *int) bool {
	var length uint32
	if !GetUint32(src, &length, offset) {
		return false
	}
	if uint64(len(src)) < uint64(*offset)+uint64(length) {
		return false
	}

	*dst = make([]byte, length)
	copy(*dst, src[*offset:])
	*offset += int(length)
	return true
}

package common

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// EncodeBytesToBase58 encodes bytes directly to base58
func EncodeBytesToBase58(bytes []byte) string {
	return base58.Encode(bytes)
}

// DecodeBase58ToBytes decodes base58 string to bytes
func DecodeBase58ToBytes(base58Str string) ([]byte, error) {
	bytes, err := base58.Decode(base58Str)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 string: %w", err)
	}
	return bytes, nil
}

// ParsePubkey decodes a base58 address and checks it is exactly 32 bytes.
func ParsePubkey(s string) (solana.PublicKey, error) {
	bytes, err := DecodeBase58ToBytes(s)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if len(bytes) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: expected %d bytes, got %d", s, solana.PublicKeyLength, len(bytes))
	}
	return solana.PublicKeyFromBytes(bytes), nil
}

// ParsePubkeys decodes every address or reports the first bad one.
func ParsePubkeys(ss []string) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, 0, len(ss))
	for _, s := range ss {
		pk, err := ParsePubkey(s)
		if err != nil {
			return nil, err
		}
		out = append(out, pk)
	}
	return out, nil
}

// IsValidBase58 checks if a string is valid base58
func IsValidBase58(str string) bool {
	decoded, err := base58.Decode(str)
	return err == nil && len(decoded) > 0
}

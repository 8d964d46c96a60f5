// Package utils
package utils

import (
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var ErrInvalidAddress = errors.New("invalid account address")

// ValidateAccount checks that the address is a base58 encoded ed25519 public key.
func ValidateAccount(accountAddress string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(strings.TrimSpace(accountAddress))
	if err != nil {
		return solana.PublicKey{}, ErrInvalidAddress
	}
	return pk, nil
}

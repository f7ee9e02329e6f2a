package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	accessCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	accessCodeDigits  = "0123456789"
)

// GenerateAccessCode produces a fresh candidate access code: four uppercase
// letters followed by two digits, drawn from a CSPRNG.
func GenerateAccessCode() (string, error) {
	code := make([]byte, 6)
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(accessCodeLetters))))
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		code[i] = accessCodeLetters[n.Int64()]
	}
	for i := 4; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(accessCodeDigits))))
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		code[i] = accessCodeDigits[n.Int64()]
	}
	return string(code), nil
}

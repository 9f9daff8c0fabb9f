package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

func NewID() string { return uuid.NewString() }

// RandomDigits returns an n-digit decimal string without a leading zero.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digits must be positive, got %d", n)
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n-1)), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(lo, big.NewInt(10)), lo)
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return v.Add(v, lo).String(), nil
}

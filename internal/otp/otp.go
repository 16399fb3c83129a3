package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minCode = 1000
	maxCode = 9999
)

// Generator produces 4-digit numeric codes.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a uniformly random code in [1000, 9999].
func (Generator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+minCode), nil
}

package approve_loan

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateVerificationCode creates the pickup code handed to the requester
// on approval.
func generateVerificationCode() (string, error) {
	code := make([]byte, domain.VerificationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate verification code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}

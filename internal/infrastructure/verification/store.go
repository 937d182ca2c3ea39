// Package verification keeps the short-lived signup codes: one slot per
// email, overwritten on resend, checked and consumed on verify.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeTTL is how long a signup code stays valid.
const CodeTTL = 5 * time.Minute

type Store interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the stored code; the second result is false when no live
	// code exists for the email.
	Get(ctx context.Context, email string) (string, bool, error)
	Delete(ctx context.Context, email string) error
}

// GenerateCode returns a 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

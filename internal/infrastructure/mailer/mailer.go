// Package mailer dispatches transactional email. Delivery is fire-and-forget:
// a failed send is logged and never surfaced to the operation that queued it.
package mailer

import (
	"context"
	"fmt"
	"log"
)

type Notifier interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendApplicationStatus(ctx context.Context, to, jobTitle, status string) error
}

// Dispatch runs send in its own goroutine and logs the outcome.
func Dispatch(logger *log.Logger, tag string, send func(ctx context.Context) error) {
	go func() {
		if err := send(context.Background()); err != nil {
			if logger != nil {
				logger.Printf("[Mailer] %s failed: %v", tag, err)
			}
			return
		}
		if logger != nil {
			logger.Printf("[Mailer] %s sent", tag)
		}
	}()
}

func verificationBody(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
}

func statusBody(jobTitle, status string) string {
	return fmt.Sprintf("Your application for %q is now %s.", jobTitle, status)
}

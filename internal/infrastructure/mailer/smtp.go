package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"jobboard/internal/config"
)

type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	host := strings.TrimSpace(cfg.Host)
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "587"
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}

	return &SMTPNotifier{
		addr: host + ":" + port,
		auth: auth,
		from: strings.TrimSpace(cfg.From),
	}
}

func (n *SMTPNotifier) SendVerificationCode(ctx context.Context, to, code string) error {
	return n.send(ctx, to, "Verify your account", verificationBody(code))
}

func (n *SMTPNotifier) SendApplicationStatus(ctx context.Context, to, jobTitle, status string) error {
	return n.send(ctx, to, "Application update", statusBody(jobTitle, status))
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.from == "" || strings.TrimSpace(to) == "" {
		return fmt.Errorf("missing sender or recipient")
	}

	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg))
}

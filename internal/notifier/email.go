package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/rs/zerolog"
)

const bulkSubject = "Aggiornamento Matrimonio"

// EmailSender sends guest notifications and admin recaps over SMTP.
type EmailSender struct {
	host       string
	port       string
	username   string
	password   string
	fromName   string
	fromAddr   string
	adminEmail string

	coupleNames string
	siteURL     string

	log zerolog.Logger
}

func NewEmailSender(cfg *config.Config, log zerolog.Logger) *EmailSender {
	fromAddr := cfg.SMTPFromEmail
	if fromAddr == "" {
		fromAddr = cfg.SMTPUsername
	}
	return &EmailSender{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromName:    cfg.SMTPFromName,
		fromAddr:    fromAddr,
		adminEmail:  cfg.AdminEmail,
		coupleNames: cfg.CoupleNames,
		siteURL:     cfg.SiteURL,
		log:         log.With().Str("component", "email").Logger(),
	}
}

// SendBulk delivers one personalized message per recipient, fanning out
// concurrently and waiting for all sends. Successes and failures are
// collected independently.
func (e *EmailSender) SendBulk(ctx context.Context, recipients []family.Recipient, messageBody string) BulkResult {
	result := BulkResult{Total: len(recipients)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, recipient := range recipients {
		wg.Add(1)
		go func(r family.Recipient) {
			defer wg.Done()

			err := e.sendToRecipient(ctx, r, messageBody)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				e.log.Error().Err(err).Str("to", r.Email).Msg("failed to send notification")
			} else {
				result.Sent++
			}
		}(recipient)
	}
	wg.Wait()

	return result
}

func (e *EmailSender) sendToRecipient(ctx context.Context, r family.Recipient, messageBody string) error {
	content, err := ComposeMessage(r, messageBody, e.coupleNames, e.siteURL)
	if err != nil {
		return err
	}
	return e.send(ctx, r.Email, bulkSubject, content)
}

// NotifyResponse mails the admin a recap of a confirmed or changed RSVP.
// Silently skipped when ADMIN_EMAIL is not configured.
func (e *EmailSender) NotifyResponse(ctx context.Context, guests []models.Guest) error {
	if strings.TrimSpace(e.adminEmail) == "" {
		e.log.Info().Msg("ADMIN_EMAIL not configured, skipping confirmation recap email")
		return nil
	}

	lines := make([]string, 0, len(guests))
	for _, g := range guests {
		status := "❌ Declinato"
		if g.ResponseStatus == models.ResponseConfirmed {
			status = "✅ Confermato"
		}
		invitation := "Solo serata"
		if g.InvitationType == models.InvitationFull {
			invitation = "Cerimonia completa"
		}

		line := fmt.Sprintf("• %s %s - %s (%s)", g.Name, g.Surname, status, invitation)
		if g.MenuType != nil {
			line += fmt.Sprintf("\n   Menu: %s", *g.MenuType)
		}
		if g.DietaryRequirements != nil && *g.DietaryRequirements != "" {
			line += fmt.Sprintf("\n   Requisiti dietetici: %s", *g.DietaryRequirements)
		}
		lines = append(lines, line)
	}

	body := fmt.Sprintf("Recap conferma/modifica presenza:\n\n%s", strings.Join(lines, "\n\n"))
	return e.send(ctx, e.adminEmail, "Recap Conferma/Modifica Presenza", body)
}

// send delivers a single plain-text mail. An unconfigured SMTP host is not
// an error: the message is logged and dropped, which keeps local
// development working without a mail server.
func (e *EmailSender) send(_ context.Context, to, subject, body string) error {
	if e.host == "" || e.username == "" || e.password == "" {
		e.log.Warn().Str("to", to).Str("subject", subject).Msg("SMTP not configured, email not sent")
		return nil
	}

	from := e.fromAddr
	if e.fromName != "" {
		from = fmt.Sprintf("%s <%s>", e.fromName, e.fromAddr)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", e.host, e.port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: e.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.username, e.password, e.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(e.fromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		e.log.Warn().Err(err).Msg("SMTP QUIT failed")
	}

	e.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

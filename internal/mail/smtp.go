package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/petmily-app/backend-go/internal/config"
)

// SMTPProvider delivers mail over SMTP, optionally with implicit TLS
// (port 465 style). STARTTLS upgrades are left to smtp.SendMail.
type SMTPProvider struct {
	host     string
	port     int64
	from     string
	useTLS   bool
	auth     smtp.Auth
	username string
}

// NewSMTPProvider creates an SMTP mail provider from config.
func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.SMTPPort)
	}

	var auth smtp.Auth
	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &SMTPProvider{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		useTLS:   cfg.SMTPUseTLS,
		auth:     auth,
		username: cfg.SMTPUsername,
	}, nil
}

func (p *SMTPProvider) SendVerificationCode(to, code string) error {
	subject := "Petmily verification code"
	body := fmt.Sprintf("Your Petmily verification code is %s.\r\nIt is only valid for the most recent request.\r\n", code)
	return p.send([]string{to}, subject, body)
}

func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) send(to []string, subject, body string) error {
	message := buildMessage(p.from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	if p.useTLS {
		tlsConfig := &tls.Config{
			ServerName: p.host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to dial TLS: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, p.host)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		defer client.Close()

		return p.sendWithClient(client, to, message)
	}

	return smtp.SendMail(addr, p.auth, p.from, to, message)
}

func (p *SMTPProvider) sendWithClient(client *smtp.Client, to []string, message []byte) error {
	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(p.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func buildMessage(from string, to []string, subject, body string) []byte {
	builder := &strings.Builder{}
	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ",")))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	return []byte(builder.String())
}

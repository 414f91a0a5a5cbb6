package mail

import "log/slog"

// LogProvider writes outgoing mail to the log instead of sending it. Used in
// development when no SMTP host is configured.
type LogProvider struct {
	logger *slog.Logger
}

// NewLogProvider creates a log-only mail provider.
func NewLogProvider(logger *slog.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) SendVerificationCode(to, code string) error {
	p.logger.Info("📧 [Mail] Verification code (SMTP disabled, logging only)",
		"to", to,
		"code", code,
	)
	return nil
}

func (p *LogProvider) Close() error {
	return nil
}

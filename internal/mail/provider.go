package mail

// Provider sends transactional email. The only message the platform sends
// today is the signup verification code.
type Provider interface {
	SendVerificationCode(to, code string) error
	Close() error
}

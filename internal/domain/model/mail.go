package model

// MailTemplate names a message layout rendered by the mailer.
type MailTemplate string

const (
	MailTemplatePasswordReset      MailTemplate = "account/email_forgot_passwd"
	MailTemplateSignupConfirmation MailTemplate = "account/email_confirmation"
)

// MailMessage is an outgoing e-mail request.
type MailMessage struct {
	To       string            `json:"to"`
	From     string            `json:"from,omitempty"`
	Subject  string            `json:"subject"`
	Template MailTemplate      `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

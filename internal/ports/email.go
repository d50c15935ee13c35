package ports

import "context"

// Mail is one outbound message. Plain text only.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers mail. The console adapter logs instead of sending;
// a real SMTP or API adapter can replace it without touching services.
type EmailSender interface {
	Send(ctx context.Context, m Mail) error
}

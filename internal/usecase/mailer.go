package usecase

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

//go:generate mockgen -source mailer.go -destination=mailer_mock_test.go -package=usecase

// Mailer delivers outgoing e-mail requests.
type Mailer interface {
	Send(ctx context.Context, msg model.MailMessage) error
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const (
	passwordResetSubject = "Reset your password"
	signupSubject        = "Confirm your account"
	minPasswordLength    = 6
)

// AuthSettings carries the account mail parameters.
type AuthSettings struct {
	BaseURL string
	Sender  string
}

// NewAuthSettings extracts account mail parameters from configuration.
func NewAuthSettings(cfg *config.Config) AuthSettings {
	return AuthSettings{BaseURL: cfg.BaseURL, Sender: cfg.MailDefaultSender}
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	mailer   Mailer
	settings AuthSettings
	logger   *zap.Logger
	newUID   func() string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	mailer Mailer,
	settings AuthSettings,
	logger *zap.Logger,
) *AuthUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   strategy,
		mailer:   mailer,
		settings: settings,
		logger:   logger.Named("auth"),
		newUID:   uuid.NewString,
	}
}

// Register creates a new user and returns auth token. E-mail is optional
// but must be unique when given.
func (u *AuthUseCase) Register(ctx context.Context, login, email, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	email = normalizeEmail(email)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	u.logger.Info("user registered", zap.Int64("user_id", usr.ID))
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !usr.IsActive {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// Signup opens an inactive account without a password and mails a link
// where the user picks one. Delivery failures are logged only.
func (u *AuthUseCase) Signup(ctx context.Context, login, email string) (*model.User, error) {
	login = strings.TrimSpace(login)
	email = normalizeEmail(email)
	if login == "" || email == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	uid := u.newUID()
	usr, err := u.users.CreatePending(ctx, login, email, uid)
	if err != nil {
		return nil, err
	}

	msg := model.MailMessage{
		To:       usr.Email,
		From:     u.settings.Sender,
		Subject:  signupSubject,
		Template: model.MailTemplateSignupConfirmation,
		Data: map[string]string{
			"login":            usr.Login,
			"set_password_url": u.settings.BaseURL + "/account/password/" + uid,
		},
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.logger.Error("send signup confirmation mail", zap.Int64("user_id", usr.ID), zap.Error(err))
		return usr, nil
	}

	u.logger.Info("user signed up", zap.Int64("user_id", usr.ID))
	return usr, nil
}

// ChangePassword replaces the password of a signed-in user. The
// confirmation must repeat the password.
func (u *AuthUseCase) ChangePassword(ctx context.Context, userID int64, password, confirmation string) error {
	if len(password) < minPasswordLength || password != confirmation {
		return domainErrors.ErrInvalidCredentials
	}

	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return domainErrors.ErrInvalidCredentials
		}
		return err
	}

	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	u.logger.Info("password changed", zap.Int64("user_id", userID))
	return nil
}

// RequestPasswordReset stores a fresh reset link for the account and mails
// it. Unknown addresses are accepted silently. Mail delivery is best effort.
func (u *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}

	uid := u.newUID()
	if err := u.users.SetResetUID(ctx, usr.ID, uid); err != nil {
		return err
	}

	msg := model.MailMessage{
		To:       usr.Email,
		From:     u.settings.Sender,
		Subject:  passwordResetSubject,
		Template: model.MailTemplatePasswordReset,
		Data: map[string]string{
			"login":     usr.Login,
			"reset_url": u.settings.BaseURL + "/account/password/" + uid,
		},
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.logger.Error("send password reset mail", zap.Int64("user_id", usr.ID), zap.Error(err))
		return nil
	}

	u.logger.Info("password reset requested", zap.Int64("user_id", usr.ID))
	return nil
}

// SetPassword consumes a reset link, stores the new password, activates the
// account and signs the user in.
func (u *AuthUseCase) SetPassword(ctx context.Context, uid, password string) (*model.User, string, error) {
	if uid == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByResetUID(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.users.UpdatePassword(ctx, usr.ID, hash); err != nil {
		return nil, "", err
	}
	usr.PasswordHash = hash
	usr.ResetPasswordUID = ""
	usr.IsActive = true

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	u.logger.Info("password changed", zap.Int64("user_id", usr.ID))
	return usr, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

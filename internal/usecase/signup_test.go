package usecase

import (
	"context"
	"errors"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestSignupMailsConfirmationLink(t *testing.T) {
	uc, repo, mailer := newResetFixture(t)
	ctx := context.Background()

	mailer.EXPECT().Send(gomock.Any(), model.MailMessage{
		To:       "ivan@example.com",
		From:     "no-reply@shop.example",
		Subject:  signupSubject,
		Template: model.MailTemplateSignupConfirmation,
		Data: map[string]string{
			"login":            "ivan",
			"set_password_url": "https://shop.example/account/password/reset-uid",
		},
	}).Return(nil)

	user, err := uc.Signup(ctx, " ivan ", "Ivan@Example.com")
	require.NoError(t, err)
	require.False(t, user.IsActive)
	require.Empty(t, user.PasswordHash)

	_, _, err = uc.Authenticate(ctx, "ivan", "secret1")
	require.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)

	activated, token, err := uc.SetPassword(ctx, "reset-uid", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, activated.IsActive)
	require.Equal(t, "hash:secret1", repo.ByID[user.ID].PasswordHash)
}

func TestSignupRejectsIncompleteInput(t *testing.T) {
	testCases := []struct {
		name  string
		login string
		email string
	}{
		{name: "no login", login: " ", email: "a@example.com"},
		{name: "no email", login: "judy", email: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, mailer := newResetFixture(t)
			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
			_, err := uc.Signup(context.Background(), tc.login, tc.email)
			require.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
		})
	}
}

func TestSignupDuplicate(t *testing.T) {
	uc, repo, mailer := newResetFixture(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, "kate", "kate@example.com", "hash:x")
	require.NoError(t, err)

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
	_, err = uc.Signup(ctx, "kate", "other@example.com")
	require.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
}

func TestSignupMailFailureKeepsAccount(t *testing.T) {
	uc, repo, mailer := newResetFixture(t)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	user, err := uc.Signup(context.Background(), "leo", "leo@example.com")
	require.NoError(t, err)
	require.Contains(t, repo.ByID, user.ID)
}

func TestChangePassword(t *testing.T) {
	testCases := []struct {
		name         string
		userID       int64
		password     string
		confirmation string
		wantErr      error
		wantHash     string
	}{
		{name: "ok", userID: 1, password: "secret2", confirmation: "secret2", wantHash: "hash:secret2"},
		{name: "mismatch", userID: 1, password: "secret2", confirmation: "secret3", wantErr: domainErrors.ErrInvalidCredentials, wantHash: "hash:old"},
		{name: "too short", userID: 1, password: "abc", confirmation: "abc", wantErr: domainErrors.ErrInvalidCredentials, wantHash: "hash:old"},
		{name: "unknown user", userID: 42, password: "secret2", confirmation: "secret2", wantErr: domainErrors.ErrNotFound, wantHash: "hash:old"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo, _ := newResetFixture(t)
			ctx := context.Background()
			user, err := repo.Create(ctx, "mia", "mia@example.com", "hash:old")
			require.NoError(t, err)

			err = uc.ChangePassword(ctx, tc.userID, tc.password, tc.confirmation)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantHash, user.PasswordHash)
		})
	}
}

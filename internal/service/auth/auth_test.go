package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authn "github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	"github.com/Hosi121/Bansho-sub000/internal/domain/services"
)

type authFixture struct {
	users  *fakeUsers
	resets *fakeResets
	mail   *recordingMailer
	svc    *authService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newFakeUsers(),
		resets: &fakeResets{},
		mail:   &recordingMailer{},
	}
	f.svc = NewAuthService(f.users, f.resets, inlineTx{}, fakeIssuer{}, f.mail, "https://bansho.test/", discardLogger()).(*authService)
	return f
}

func (f *authFixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), &services.RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Name:     "Taro",
	})
	require.NoError(t, err)
	return resp.User
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(context.Background(), &services.RegisterRequest{
		Email:    "  Taro@Example.com ",
		Password: "correct-horse",
		Name:     " Taro ",
	})
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", resp.User.Email)
	assert.Equal(t, "Taro", resp.User.Name)
	assert.Equal(t, "token-for-"+resp.User.ID, resp.Token)
	assert.NotEqual(t, "correct-horse", resp.User.PasswordHash)
	assert.True(t, authn.CheckPassword(resp.User.PasswordHash, "correct-horse"))

	_, err = f.svc.Register(context.Background(), &services.RegisterRequest{
		Email: "taro@example.com", Password: "another-pass", Name: "Other",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       services.RegisterRequest
		wantField string
	}{
		{"bad email", services.RegisterRequest{Email: "nope", Password: "12345678", Name: "a"}, "email"},
		{"short password", services.RegisterRequest{Email: "a@b.co", Password: "1234567", Name: "a"}, "password"},
		{"long password", services.RegisterRequest{Email: "a@b.co", Password: strings.Repeat("x", 101), Name: "a"}, "password"},
		{"blank name", services.RegisterRequest{Email: "a@b.co", Password: "12345678", Name: "  "}, "name"},
		{"long name", services.RegisterRequest{Email: "a@b.co", Password: "12345678", Name: strings.Repeat("名", 101)}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			_, err := f.svc.Register(context.Background(), &tt.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestRegisterLongPasswords(t *testing.T) {
	for _, password := range []string{
		strings.Repeat("p", 72),
		strings.Repeat("p", 73),
		strings.Repeat("p", 100),
		strings.Repeat("あ", 30),
	} {
		f := newAuthFixture()
		_, err := f.svc.Register(context.Background(), &services.RegisterRequest{
			Email: "long@example.com", Password: password, Name: "Long",
		})
		require.NoError(t, err, "%d bytes", len(password))

		resp, err := f.svc.Login(context.Background(), &services.LoginRequest{Email: "long@example.com", Password: password})
		require.NoError(t, err)
		assert.Equal(t, "long@example.com", resp.User.Email)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "taro@example.com")

	resp, err := f.svc.Login(context.Background(), &services.LoginRequest{Email: "TARO@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	for _, req := range []services.LoginRequest{
		{Email: "taro@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "correct-horse"},
	} {
		_, err := f.svc.Login(context.Background(), &req)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, "Invalid email or password", err.Error())
	}
}

func TestForgotPassword(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "taro@example.com")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: "taro@example.com"}))
	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: "taro@example.com"}))

	require.Len(t, f.resets.tokens, 2)
	first, second := f.resets.tokens[0], f.resets.tokens[1]
	assert.True(t, first.Used(), "earlier token is invalidated by the new request")
	assert.False(t, second.Used())
	assert.Equal(t, user.ID, second.UserID)
	assert.Len(t, second.Token, 64)
	assert.WithinDuration(t, time.Now().Add(time.Hour), second.ExpiresAt, time.Minute)

	require.Len(t, f.mail.sent, 2)
	assert.Equal(t, "taro@example.com", f.mail.sent[1].To)
	assert.Contains(t, f.mail.sent[1].Text, "https://bansho.test/reset-password?token="+second.Token)
}

func TestForgotPasswordHidesUnknownAndMailFailures(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Empty(t, f.resets.tokens)

	f.register(t, "taro@example.com")
	f.mail.err = errBoom
	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: "taro@example.com"}))
	assert.Len(t, f.resets.tokens, 1)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "taro@example.com")
	ctx := context.Background()
	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: user.Email}))
	token := f.resets.tokens[0]

	require.NoError(t, f.svc.ResetPassword(ctx, &services.ResetPasswordRequest{Token: token.Token, Password: "brand-new-pass"}))
	stored, _ := f.users.GetByID(ctx, user.ID)
	assert.True(t, authn.CheckPassword(stored.PasswordHash, "brand-new-pass"))
	assert.True(t, token.Used())

	err := f.svc.ResetPassword(ctx, &services.ResetPasswordRequest{Token: token.Token, Password: "brand-new-pass"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Reset token has already been used", err.Error())
}

func TestResetPasswordConcurrentUse(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "taro@example.com")
	ctx := context.Background()
	require.NoError(t, f.svc.ForgotPassword(ctx, &services.ForgotPasswordRequest{Email: user.Email}))
	token := f.resets.tokens[0]

	require.NoError(t, f.svc.ResetPassword(ctx, &services.ResetPasswordRequest{Token: token.Token, Password: "first-winner"}))

	// the second reset read the token before the first one claimed it
	f.resets.staleReads = true
	err := f.svc.ResetPassword(ctx, &services.ResetPasswordRequest{Token: token.Token, Password: "second-loser"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Reset token has already been used", err.Error())

	stored, _ := f.users.GetByID(ctx, user.ID)
	assert.True(t, authn.CheckPassword(stored.PasswordHash, "first-winner"))
}

func TestResetPasswordRejects(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "taro@example.com")
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	f.resets.tokens = append(f.resets.tokens,
		&models.PasswordResetToken{ID: "expired", UserID: user.ID, Token: "expired", ExpiresAt: past},
		&models.PasswordResetToken{ID: "orphan", UserID: "missing", Token: "orphan", ExpiresAt: time.Now().Add(time.Hour)},
	)

	tests := []struct {
		token string
		want  string
	}{
		{"unknown", "Invalid or expired reset token"},
		{"expired", "Reset token has expired"},
		{"orphan", "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			err := f.svc.ResetPassword(ctx, &services.ResetPasswordRequest{Token: tt.token, Password: "brand-new-pass"})
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

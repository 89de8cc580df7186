package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zift.local/internal/api"
	"zift.local/internal/domain"
)

type fakeGateway struct {
	calls map[string]int

	loginResp  *api.AuthResponse
	loginErr   error
	verifyErr  error
	googleResp *api.AuthResponse

	verifiedEmail, verifiedOTP string
	resentTo                   string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: map[string]int{}}
}

func (g *fakeGateway) Login(_ context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	g.calls["login"]++
	return g.loginResp, g.loginErr
}

func (g *fakeGateway) Register(_ context.Context, req api.RegisterRequest) (string, error) {
	g.calls["register"]++
	return "Registered. Check your email.", nil
}

func (g *fakeGateway) VerifyEmail(_ context.Context, email, otp string) (string, error) {
	g.calls["verify"]++
	g.verifiedEmail, g.verifiedOTP = email, otp
	return "Email verified", g.verifyErr
}

func (g *fakeGateway) ResendOTP(_ context.Context, email string) (string, error) {
	g.calls["resend"]++
	g.resentTo = email
	return "OTP sent", nil
}

func (g *fakeGateway) ForgotPassword(_ context.Context, email string) (string, error) {
	g.calls["forgot"]++
	return "Reset link sent", nil
}

func (g *fakeGateway) GoogleAuth(_ context.Context, idToken string) (*api.AuthResponse, error) {
	g.calls["google"]++
	return g.googleResp, nil
}

type recordingSession struct {
	stored *domain.Session
}

func (r *recordingSession) Set(_ context.Context, sess domain.Session) {
	r.stored = &sess
}

type staticIDToken string

func (s staticIDToken) IDToken(context.Context) (string, error) { return string(s), nil }

func TestLoginStoresSessionAndNotifies(t *testing.T) {
	gw := newFakeGateway()
	user := &domain.User{ID: "u1", Name: "Asha Rao", Email: "a@x.io"}
	gw.loginResp = &api.AuthResponse{User: user, AccessToken: "T"}
	sess := &recordingSession{}

	var notified *domain.User
	c := NewController(gw, sess, nil, func(u *domain.User) { notified = u })

	require.NoError(t, c.Login(context.Background(), LoginForm{Email: "a@x.io", Password: "secret123"}))
	require.NotNil(t, sess.stored)
	assert.Equal(t, "T", sess.stored.AccessToken)
	assert.Equal(t, user, sess.stored.User)
	assert.Equal(t, user, notified)
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)

	err := c.Login(context.Background(), LoginForm{Email: "not-an-email"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email is invalid", verr.Field("email"))
	assert.Equal(t, "Password is required", verr.Field("password"))
	assert.Zero(t, gw.calls["login"])
}

func TestLoginEmailNotVerifiedLeadsToVerify(t *testing.T) {
	gw := newFakeGateway()
	gw.loginErr = &api.Error{Status: 403, Message: "Email not verified"}
	sess := &recordingSession{}
	c := NewController(gw, sess, nil, nil)

	err := c.Login(context.Background(), LoginForm{Email: "a@x.io", Password: "pw"})
	require.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Equal(t, StateLogin, c.State())
	assert.Nil(t, sess.stored)

	msg, err := c.ConfirmResendOTP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OTP sent", msg)
	assert.Equal(t, "a@x.io", gw.resentTo)
	assert.Equal(t, StateVerify, c.State())
	assert.Equal(t, "a@x.io", c.PendingEmail())
}

func TestUnverifiedLoginAfterRegisterIgnoresCooldown(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Register(context.Background(), RegisterForm{Name: "Asha", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)
	c.Back()
	now = now.Add(5 * time.Second)

	gw.loginErr = &api.Error{Status: 403, Message: "Email not verified"}
	err = c.Login(context.Background(), LoginForm{Email: "b@y.io", Password: "pw"})
	require.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Equal(t, time.Duration(0), c.ResendIn())

	msg, err := c.ConfirmResendOTP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OTP sent", msg)
	assert.Equal(t, 1, gw.calls["resend"])
	assert.Equal(t, "b@y.io", gw.resentTo)
	assert.Equal(t, StateVerify, c.State())
	assert.Equal(t, "b@y.io", c.PendingEmail())
	assert.Equal(t, ResendCooldown, c.ResendIn())
}

func TestUnverifiedLoginSameEmailStillSendsCode(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Register(context.Background(), RegisterForm{Name: "Asha", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)
	c.Back()

	gw.loginErr = &api.Error{Status: 403, Message: "Email not verified"}
	require.ErrorIs(t, c.Login(context.Background(), LoginForm{Email: "a@x.io", Password: "pw"}), ErrEmailNotVerified)

	_, err = c.ConfirmResendOTP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.calls["resend"])
	assert.Equal(t, StateVerify, c.State())

	_, err = c.ResendOTP(context.Background())
	assert.ErrorIs(t, err, ErrResendCooldown)
	assert.Equal(t, 1, gw.calls["resend"])
}

func TestLoginServerErrorKeepsState(t *testing.T) {
	gw := newFakeGateway()
	gw.loginErr = &api.Error{Status: 401, Message: "Invalid credentials"}
	c := NewController(gw, &recordingSession{}, nil, nil)

	err := c.Login(context.Background(), LoginForm{Email: "a@x.io", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", api.ErrorMessage(err, "Login failed"))
	assert.Equal(t, StateLogin, c.State())
}

func TestRegisterMovesToVerifyWithEmail(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	c.GoToRegister()

	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "short"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Field("password"))
	assert.Zero(t, gw.calls["register"])

	msg, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: " a@x.io ", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "Registered. Check your email.", msg)
	assert.Equal(t, StateVerify, c.State())
	assert.Equal(t, "a@x.io", c.PendingEmail())
}

func TestVerifySuccessReturnsToLogin(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)

	msg, err := c.Verify(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "Email verified", msg)
	assert.Equal(t, "a@x.io", gw.verifiedEmail)
	assert.Equal(t, "123456", gw.verifiedOTP)
	assert.Equal(t, StateLogin, c.State())
}

func TestVerifyIncompleteOTPSkipsNetwork(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)

	for _, otp := range []string{"", "12345", "12a456"} {
		_, err := c.Verify(context.Background(), otp)
		assert.ErrorIs(t, err, ErrIncompleteOTP, otp)
	}
	assert.Zero(t, gw.calls["verify"])
	assert.Equal(t, StateVerify, c.State())
}

func TestVerifyFailureStaysOnVerify(t *testing.T) {
	gw := newFakeGateway()
	gw.verifyErr = &api.Error{Status: 400, Message: "Invalid OTP"}
	c := NewController(gw, &recordingSession{}, nil, nil)
	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)

	_, err = c.Verify(context.Background(), "000000")
	require.Error(t, err)
	assert.Equal(t, StateVerify, c.State())
}

func TestResendCooldown(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)

	_, err = c.ResendOTP(context.Background())
	assert.ErrorIs(t, err, ErrResendCooldown)
	assert.Equal(t, ResendCooldown, c.ResendIn())

	now = now.Add(ResendCooldown)
	_, err = c.ResendOTP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.calls["resend"])
	assert.Equal(t, ResendCooldown, c.ResendIn())
}

func TestForgotPasswordKeepsState(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, &recordingSession{}, nil, nil)
	c.GoToForgotPassword()

	msg, err := c.ForgotPassword(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Reset link sent", msg)
	assert.Equal(t, StateForgotPassword, c.State())

	c.Back()
	assert.Equal(t, StateLogin, c.State())
}

func TestGoogleSignIn(t *testing.T) {
	gw := newFakeGateway()
	gw.googleResp = &api.AuthResponse{AccessToken: "G", User: &domain.User{Email: "g@x.io"}}
	sess := &recordingSession{}
	authenticated := false
	c := NewController(gw, sess, staticIDToken("id-1"), func(*domain.User) { authenticated = true })

	require.NoError(t, c.GoogleSignIn(context.Background()))
	assert.True(t, authenticated)
	assert.Equal(t, "G", sess.stored.AccessToken)
}

func TestGoogleSignInUnavailable(t *testing.T) {
	c := NewController(newFakeGateway(), &recordingSession{}, nil, nil)
	assert.True(t, errors.Is(c.GoogleSignIn(context.Background()), ErrGoogleUnavailable))
}

func TestEditEmailFromVerify(t *testing.T) {
	c := NewController(newFakeGateway(), &recordingSession{}, nil, nil)
	c.EditEmail()
	assert.Equal(t, StateLogin, c.State())

	_, err := c.Register(context.Background(), RegisterForm{Name: "A", Email: "a@x.io", Password: "longenough"})
	require.NoError(t, err)
	c.EditEmail()
	assert.Equal(t, StateRegister, c.State())
}

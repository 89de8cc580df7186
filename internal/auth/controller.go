// Package auth drives the pre-authentication screens: login, registration,
// password reset and email verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"zift.local/internal/api"
	"zift.local/internal/domain"
	"zift.local/internal/identity"
)

type State int

const (
	StateLogin State = iota
	StateRegister
	StateForgotPassword
	StateVerify
)

func (s State) String() string {
	switch s {
	case StateRegister:
		return "register"
	case StateForgotPassword:
		return "forgot-password"
	case StateVerify:
		return "verify"
	default:
		return "login"
	}
}

// ResendCooldown is the wait between two verification code resends.
const ResendCooldown = 60 * time.Second

// emailNotVerified is the backend's exact message for an unverified account.
const emailNotVerified = "Email not verified"

var (
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrIncompleteOTP     = errors.New("please enter the complete 6-digit code")
	ErrResendCooldown    = errors.New("please wait before requesting another code")
	ErrNoPendingEmail    = errors.New("no email awaiting verification")
	ErrNoSession         = errors.New("server response carried no access token")
	ErrGoogleUnavailable = errors.New("google sign-in is not configured")
)

// Gateway is the subset of the backend the auth screens call.
type Gateway interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (string, error)
	VerifyEmail(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	GoogleAuth(ctx context.Context, idToken string) (*api.AuthResponse, error)
}

type SessionWriter interface {
	Set(ctx context.Context, sess domain.Session)
}

type LoginForm struct {
	Email    string
	Password string
}

type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

// Controller is the auth flow state machine. OnAuthenticated is called once a
// session has been stored; after that the controller is done.
type Controller struct {
	api             Gateway
	session         SessionWriter
	google          identity.IDTokenSource
	onAuthenticated func(*domain.User)
	now             func() time.Time

	mu           sync.Mutex
	state        State
	pendingEmail string
	lastResend   time.Time
}

// NewController starts in the login state. google may be nil when federated
// sign-in is not configured.
func NewController(gw Gateway, sess SessionWriter, google identity.IDTokenSource, onAuthenticated func(*domain.User)) *Controller {
	if onAuthenticated == nil {
		onAuthenticated = func(*domain.User) {}
	}
	return &Controller{
		api:             gw,
		session:         sess,
		google:          google,
		onAuthenticated: onAuthenticated,
		now:             time.Now,
		state:           StateLogin,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PendingEmail is the address the verify screen works on.
func (c *Controller) PendingEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingEmail
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) GoToRegister()       { c.setState(StateRegister) }
func (c *Controller) GoToForgotPassword() { c.setState(StateForgotPassword) }
func (c *Controller) Back()               { c.setState(StateLogin) }

// EditEmail leaves the verify screen for registration so the address can be
// corrected.
func (c *Controller) EditEmail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateVerify {
		c.state = StateRegister
	}
}

func (c *Controller) Login(ctx context.Context, form LoginForm) error {
	f := fieldErrors{}
	checkEmail(f, form.Email)
	if form.Password == "" {
		f["password"] = "Password is required"
	}
	if err := f.err(); err != nil {
		return err
	}

	email := strings.TrimSpace(form.Email)
	resp, err := c.api.Login(ctx, api.LoginRequest{Email: email, Password: form.Password})
	if err != nil {
		if api.IsMessage(err, emailNotVerified) {
			c.mu.Lock()
			if c.pendingEmail != email {
				c.lastResend = time.Time{}
			}
			c.pendingEmail = email
			c.mu.Unlock()
			return ErrEmailNotVerified
		}
		return fmt.Errorf("login: %w", err)
	}
	return c.establish(ctx, resp)
}

// ConfirmResendOTP answers the "email not verified" prompt: it sends a new
// code and moves to the verify screen. The resend cooldown only gates the
// verify screen's own resend, not this prompt.
func (c *Controller) ConfirmResendOTP(ctx context.Context) (string, error) {
	email := c.PendingEmail()
	if email == "" {
		return "", ErrNoPendingEmail
	}
	msg, err := c.api.ResendOTP(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend otp: %w", err)
	}
	c.mu.Lock()
	c.state = StateVerify
	c.lastResend = c.now()
	c.mu.Unlock()
	return msg, nil
}

func (c *Controller) Register(ctx context.Context, form RegisterForm) (string, error) {
	f := fieldErrors{}
	if strings.TrimSpace(form.Name) == "" {
		f["name"] = "Name is required"
	}
	checkEmail(f, form.Email)
	switch {
	case form.Password == "":
		f["password"] = "Password is required"
	case len(form.Password) < minPasswordLength:
		f["password"] = "Password must be at least 8 characters"
	}
	if err := f.err(); err != nil {
		return "", err
	}

	email := strings.TrimSpace(form.Email)
	msg, err := c.api.Register(ctx, api.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    email,
		Password: form.Password,
	})
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	c.mu.Lock()
	c.pendingEmail = email
	c.state = StateVerify
	c.lastResend = c.now()
	c.mu.Unlock()
	return msg, nil
}

func (c *Controller) ForgotPassword(ctx context.Context, email string) (string, error) {
	f := fieldErrors{}
	checkEmail(f, email)
	if err := f.err(); err != nil {
		return "", err
	}
	msg, err := c.api.ForgotPassword(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

// Verify submits the emailed code. A verified account still has to log in.
func (c *Controller) Verify(ctx context.Context, otp string) (string, error) {
	if !validOTP(otp) {
		return "", ErrIncompleteOTP
	}
	email := c.PendingEmail()
	if email == "" {
		return "", ErrNoPendingEmail
	}
	msg, err := c.api.VerifyEmail(ctx, email, otp)
	if err != nil {
		return "", fmt.Errorf("verify email: %w", err)
	}
	c.setState(StateLogin)
	return msg, nil
}

func (c *Controller) ResendOTP(ctx context.Context) (string, error) {
	c.mu.Lock()
	email := c.pendingEmail
	wait := c.resendWaitLocked()
	c.mu.Unlock()

	if email == "" {
		return "", ErrNoPendingEmail
	}
	if wait > 0 {
		return "", ErrResendCooldown
	}

	msg, err := c.api.ResendOTP(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend otp: %w", err)
	}
	c.mu.Lock()
	c.lastResend = c.now()
	c.mu.Unlock()
	return msg, nil
}

// ResendIn is how long until another code may be requested.
func (c *Controller) ResendIn() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resendWaitLocked()
}

func (c *Controller) resendWaitLocked() time.Duration {
	if c.lastResend.IsZero() {
		return 0
	}
	if left := ResendCooldown - c.now().Sub(c.lastResend); left > 0 {
		return left
	}
	return 0
}

func (c *Controller) GoogleSignIn(ctx context.Context) error {
	if c.google == nil {
		return ErrGoogleUnavailable
	}
	idToken, err := c.google.IDToken(ctx)
	if err != nil {
		return err
	}
	resp, err := c.api.GoogleAuth(ctx, idToken)
	if err != nil {
		return fmt.Errorf("google sign-in: %w", err)
	}
	return c.establish(ctx, resp)
}

func (c *Controller) establish(ctx context.Context, resp *api.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return ErrNoSession
	}
	c.session.Set(ctx, domain.Session{AccessToken: resp.AccessToken, User: resp.User})
	log.Printf("[auth] signed in as %s", userEmail(resp.User))
	c.onAuthenticated(resp.User)
	return nil
}

func userEmail(u *domain.User) string {
	if u == nil {
		return "<unknown>"
	}
	return u.Email
}

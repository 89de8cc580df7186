package api

import (
	"context"

	"zift.local/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and Google sign-in.
type AuthResponse struct {
	Message     string       `json:"message"`
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Post(ctx, "/user/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var out messageResponse
	if err := c.Post(ctx, "/user/register", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) VerifyEmail(ctx context.Context, email, otp string) (string, error) {
	var out messageResponse
	body := map[string]string{"email": email, "otp": otp}
	if err := c.Post(ctx, "/user/verify-email", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResendOTP(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.Post(ctx, "/user/resend-otp", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.Post(ctx, "/user/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// GoogleAuth exchanges a federated identity token for the app's own session.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Post(ctx, "/user/google-auth", map[string]string{"idToken": idToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/user/logout", nil, nil)
}

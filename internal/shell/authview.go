package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zift.local/internal/auth"
)

func (s *Shell) authCommand(ctx context.Context, cmd string, args []string) error {
	c := s.deps.App.Auth()
	if c == nil {
		return errors.New("not ready")
	}

	switch cmd {
	case "login":
		if len(args) < 2 {
			return errors.New("usage: login <email> <password>")
		}
		c.Back()
		err := c.Login(ctx, auth.LoginForm{Email: args[0], Password: args[1]})
		if !errors.Is(err, auth.ErrEmailNotVerified) {
			return err
		}
		if !s.confirm("Your email is not verified. Send a new code?") {
			return nil
		}
		msg, err := c.ConfirmResendOTP(ctx)
		s.info(msg)
		return err

	case "register":
		c.GoToRegister()
		if len(args) == 0 {
			return nil
		}
		if len(args) < 3 {
			return errors.New("usage: register <email> <password> <name...>")
		}
		score := auth.PasswordStrength(args[1])
		s.printf("password strength: %s (%d/4)\n", auth.StrengthLabel(score), score)
		msg, err := c.Register(ctx, auth.RegisterForm{
			Email:    args[0],
			Password: args[1],
			Name:     strings.Join(args[2:], " "),
		})
		s.info(msg)
		return err

	case "forgot":
		c.GoToForgotPassword()
		if len(args) == 0 {
			return nil
		}
		msg, err := c.ForgotPassword(ctx, args[0])
		s.info(msg)
		return err

	case "otp", "verify":
		var otp auth.OTPInput
		otp.Input(0, strings.Join(args, ""))
		msg, err := c.Verify(ctx, otp.Code())
		if err == nil {
			msg += " You can log in now."
		}
		s.info(msg)
		return err

	case "resend":
		msg, err := c.ResendOTP(ctx)
		if errors.Is(err, auth.ErrResendCooldown) {
			return fmt.Errorf("%w (%ds)", err, int(c.ResendIn().Seconds()))
		}
		s.info(msg)
		return err

	case "edit":
		c.EditEmail()
		return nil

	case "google":
		return c.GoogleSignIn(ctx)

	case "back":
		c.Back()
		return nil
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *Shell) renderAuth() {
	c := s.deps.App.Auth()
	if c == nil {
		return
	}
	s.printf("\n%s\n", s.title.Sprint("TheZift Jobs"))
	switch c.State() {
	case auth.StateLogin:
		s.printf("Welcome back. login <email> <password>, register, forgot, google\n")
	case auth.StateRegister:
		s.printf("Create an account: register <email> <password> <name...>\n")
	case auth.StateForgotPassword:
		s.printf("Reset your password: forgot <email>, or back\n")
	case auth.StateVerify:
		s.printf("Enter the 6-digit code sent to %s: otp <code>\n", c.PendingEmail())
		if wait := c.ResendIn(); wait > 0 {
			s.printf("%s\n", s.faint.Sprintf("resend available in %ds", int(wait.Seconds())))
		} else {
			s.printf("%s\n", s.faint.Sprint("resend to get a new code, edit to change the email"))
		}
	}
}

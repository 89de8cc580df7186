// Package identity obtains federated identity tokens that the backend
// exchanges for its own bearer token.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrNoIDToken = errors.New("no ID token received from Google sign-in")

// IDTokenSource produces an identity token for the current user.
type IDTokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// Prompt shows the user where to approve the sign-in.
type Prompt func(verificationURL, userCode string)

// GoogleSignIn runs the OAuth2 device authorization flow against Google and
// returns the id_token from the token response.
type GoogleSignIn struct {
	config *oauth2.Config
	prompt Prompt
}

func NewGoogleSignIn(clientID, clientSecret string, prompt Prompt) *GoogleSignIn {
	return newGoogleSignIn(&oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}, prompt)
}

func newGoogleSignIn(cfg *oauth2.Config, prompt Prompt) *GoogleSignIn {
	if prompt == nil {
		prompt = func(string, string) {}
	}
	return &GoogleSignIn{config: cfg, prompt: prompt}
}

func (g *GoogleSignIn) IDToken(ctx context.Context) (string, error) {
	da, err := g.config.DeviceAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("google device auth: %w", err)
	}

	url := da.VerificationURIComplete
	if url == "" {
		url = da.VerificationURI
	}
	g.prompt(url, da.UserCode)

	tok, err := g.config.DeviceAccessToken(ctx, da)
	if err != nil {
		return "", fmt.Errorf("google device token: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}

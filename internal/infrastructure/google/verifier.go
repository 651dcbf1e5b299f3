package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

var (
	ErrNotConfigured = errors.New("google sign-in not configured")
	ErrInvalidToken  = errors.New("invalid google token")
)

type Identity struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	Verified bool
}

type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: strings.TrimSpace(clientID), validate: idtoken.Validate}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if v == nil || v.clientID == "" {
		return Identity{}, ErrNotConfigured
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return Identity{}, ErrInvalidToken
	}

	p, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{
		Subject: p.Subject,
		Email:   claimString(p.Claims, "email"),
		Name:    claimString(p.Claims, "name"),
		Picture: claimString(p.Claims, "picture"),
	}
	if b, ok := p.Claims["email_verified"].(bool); ok {
		id.Verified = b
	}
	if id.Email == "" {
		return Identity{}, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return id, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}

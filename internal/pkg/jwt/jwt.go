package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens that identify who performed an upload. Tokens
// are optional; requests without a valid token are treated as anonymous.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	Enabled() bool
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

// NewJWTService returns a disabled service when secretKey is empty.
func NewJWTService(secretKey string) Service {
	if secretKey == "" {
		return &JWTService{}
	}
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) Enabled() bool {
	return j.tokenAuth != nil
}

// ActorFromContext names the caller from a token verified by jwtauth.Verifier.
// It prefers the email claim, then user_id, then sub. ok is false when the
// request carries no valid token.
func ActorFromContext(ctx context.Context) (actor string, ok bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", false
	}

	for _, key := range []string{"email", "user_id"} {
		if v, _ := claims[key].(string); v != "" {
			return v, true
		}
	}
	if sub := token.Subject(); sub != "" {
		return sub, true
	}
	return "", false
}

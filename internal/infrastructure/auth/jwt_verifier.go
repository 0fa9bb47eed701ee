package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"copiadora_xpto/internal/domain/entities"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const roleClaim = "role"

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTVerifier validates HS256 bearer tokens issued by the users service.
// The subject carries the numeric user id and the "role" claim the role.
type JWTVerifier struct {
	key  []byte
	skew time.Duration
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &JWTVerifier{key: []byte(secret), skew: 10 * time.Second}, nil
}

// Verify parses and validates a token and returns the caller it identifies.
func (v *JWTVerifier) Verify(raw string) (entities.Actor, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, v.key),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(v.skew),
	)
	if err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(tok.Subject(), 10, 64)
	if err != nil || userID <= 0 {
		return entities.Actor{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	role := entities.RoleUser
	if claim, ok := tok.Get(roleClaim); ok {
		s, _ := claim.(string)
		switch entities.Role(strings.ToUpper(s)) {
		case entities.RoleAdmin:
			role = entities.RoleAdmin
		case entities.RoleUser:
		default:
			return entities.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, s)
		}
	}
	return entities.Actor{UserID: userID, Role: role}, nil
}

// Issue signs a token for actor. Used by tests and local tooling.
func (v *JWTVerifier) Issue(actor entities.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Subject(strconv.FormatInt(actor.UserID, 10)).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim(roleClaim, string(actor.Role)).
		Build()
	if err != nil {
		return "", err
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, v.key))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

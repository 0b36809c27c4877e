package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// hmacMethods are the signing algorithms accepted for shared-secret tokens.
var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// GenerateAccessToken creates a signed JWT for subject, valid for ttl.
func GenerateAccessToken(cfg *config.Config, subject string, ttl time.Duration) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// HMACVerifier checks tokens signed with a shared secret. Expiry is enforced
// when the token carries an exp claim.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods(hmacMethods)),
	}
}

// Verify returns nil when raw is a well-formed, correctly signed and
// unexpired token.
func (v *HMACVerifier) Verify(_ context.Context, raw string) error {
	_, err := v.parser.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	return err
}

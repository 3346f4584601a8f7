package headset

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	connectTokenTTL = 10 * time.Minute
	wsSecretMinLen  = 16
)

// GenerateConnectToken mints a short-lived HS256 token identifying this
// device to the channel server. Used only when HEADSET_WS_SECRET is set;
// unsecured deployments dial without a token.
func GenerateConnectToken(secret, deviceTag, lang, displayName string) (string, error) {
	if len(secret) < wsSecretMinLen {
		return "", NewHeadsetError(
			fmt.Sprintf("ws secret too short (need at least %d chars)", wsSecretMinLen),
			ErrCodeTokenFailed,
		)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"device":       deviceTag,
		"lang":         lang,
		"display_name": displayName,
		"iat":          now.Unix(),
		"exp":          now.Add(connectTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", WrapError(err, ErrCodeTokenFailed)
	}
	return signed, nil
}

// DecodeConnectToken verifies a connect token and returns its claims. Handy
// for tests and for server-side debugging against the same secret.
func DecodeConnectToken(tokenString, secret string) (map[string]interface{}, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, WrapError(err, ErrCodeTokenFailed)
	}

	if claims, ok := parsed.Claims.(jwt.MapClaims); ok && parsed.Valid {
		return map[string]interface{}(claims), nil
	}
	return nil, NewHeadsetError("invalid connect token", ErrCodeTokenFailed)
}

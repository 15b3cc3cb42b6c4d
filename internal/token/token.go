// Package token implements the symmetric-signed tokens used by the auth
// flows. The payload is always (account_id, token_type); the type tag is
// asserted at every use so a token minted for one flow cannot be replayed in
// another.
package token

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petconnect/internal/platform/background"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

// Type tags the purpose of a token.
type Type string

const (
	TypeAccess        Type = "access_token"
	TypeVerifyAccount Type = "verify_account_token"
	TypeResetPassword Type = "reset_password_token"
)

var knownTypes = map[Type]bool{
	TypeAccess:        true,
	TypeVerifyAccount: true,
	TypeResetPassword: true,
}

// Data is the decoded token payload.
type Data struct {
	AccountID domain.AccountID
	Type      Type
}

// Tagged error constructors. Wrong signing key or malformed input is a decode
// failure; a verified signature whose claims break the payload invariants is
// invalid token data; a valid payload of the wrong type is an unexpected
// token.

func errGenerateToken(err error) error {
	return dErrors.Wrap(err, dErrors.CodeInternal, "could not generate token")
}

func errDecodeToken() error {
	return dErrors.New(dErrors.CodeBadRequest, "could not decode token")
}

func errInvalidTokenData() error {
	return dErrors.New(dErrors.CodeBadRequest, "invalid token data")
}

func errUnexpectedToken(expected, actual Type) error {
	return dErrors.New(dErrors.CodeBadRequest, "unexpected token type").
		WithField("expected", string(expected)).
		WithField("actual", string(actual))
}

// IsUnexpectedToken reports whether err is the wrong-type failure.
func IsUnexpectedToken(err error) bool {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Code == dErrors.CodeBadRequest && de.Field("expected") != ""
	}
	return false
}

// Service signs and verifies tokens. Signing and parsing are CPU-bound, so
// both are delegated to the background executor.
type Service struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	exec      *background.Executor
}

// New builds the token service. algorithm names a jwt HMAC method ("HS256"
// unless configured otherwise); accessTTL applies to access tokens only.
// Verify and reset tokens carry no expiry.
func New(secret, algorithm string, accessTTL time.Duration, exec *background.Executor) (*Service, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not symmetric", algorithm)
	}
	return &Service{
		secret:    []byte(secret),
		method:    method,
		accessTTL: accessTTL,
		exec:      exec,
	}, nil
}

// Encode signs data into a compact token string.
func (s *Service) Encode(ctx context.Context, data Data) (string, error) {
	return background.Call(ctx, s.exec, func() (string, error) {
		claims := jwt.MapClaims{
			"account_id": data.AccountID.String(),
			"token_type": string(data.Type),
		}
		if data.Type == TypeAccess && s.accessTTL > 0 {
			claims["exp"] = jwt.NewNumericDate(time.Now().Add(s.accessTTL))
		}
		signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
		if err != nil {
			return "", errGenerateToken(err)
		}
		return signed, nil
	})
}

// Decode verifies the signature and reconstructs the payload.
func (s *Service) Decode(ctx context.Context, tokenString string) (Data, error) {
	return background.Call(ctx, s.exec, func() (Data, error) {
		parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return s.secret, nil
		})
		if err != nil || !parsed.Valid {
			return Data{}, errDecodeToken()
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return Data{}, errInvalidTokenData()
		}
		rawID, ok := claims["account_id"].(string)
		if !ok || rawID == "" {
			return Data{}, errInvalidTokenData()
		}
		rawType, ok := claims["token_type"].(string)
		if !ok || !knownTypes[Type(rawType)] {
			return Data{}, errInvalidTokenData()
		}
		accountID, err := domain.ParseAccountID(rawID)
		if err != nil {
			return Data{}, errInvalidTokenData()
		}
		return Data{AccountID: accountID, Type: Type(rawType)}, nil
	})
}

// DecodeExpect decodes and asserts the token type for the calling flow. The
// comparison is constant-time; the tags are short fixed strings.
func (s *Service) DecodeExpect(ctx context.Context, tokenString string, want Type) (Data, error) {
	data, err := s.Decode(ctx, tokenString)
	if err != nil {
		return Data{}, err
	}
	if subtle.ConstantTimeCompare([]byte(data.Type), []byte(want)) != 1 {
		return Data{}, errUnexpectedToken(want, data.Type)
	}
	return data, nil
}

package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/platform/background"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func newTestService(t *testing.T, secret string) *Service {
	t.Helper()
	svc, err := New(secret, "HS256", time.Hour, background.New(4, zerolog.Nop()))
	require.NoError(t, err)
	return svc
}

func TestNew_RejectsUnknownAndAsymmetricAlgorithms(t *testing.T) {
	exec := background.New(4, zerolog.Nop())

	_, err := New("secret", "HS4096", time.Hour, exec)
	assert.Error(t, err)

	_, err = New("secret", "RS256", time.Hour, exec)
	assert.Error(t, err)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	svc := newTestService(t, "super-secret")
	ctx := context.Background()

	for _, typ := range []Type{TypeAccess, TypeVerifyAccount, TypeResetPassword} {
		data := Data{AccountID: domain.NewAccountID(), Type: typ}

		encoded, err := svc.Encode(ctx, data)
		require.NoError(t, err)

		decoded, err := svc.Decode(ctx, encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

func TestDecode_WrongSecretFails(t *testing.T) {
	ctx := context.Background()
	minted := newTestService(t, "secret-one")
	verifier := newTestService(t, "secret-two")

	encoded, err := minted.Encode(ctx, Data{AccountID: domain.NewAccountID(), Type: TypeAccess})
	require.NoError(t, err)

	_, err = verifier.Decode(ctx, encoded)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	assert.False(t, IsUnexpectedToken(err))
}

func TestDecode_MalformedTokenFails(t *testing.T) {
	svc := newTestService(t, "secret")

	_, err := svc.Decode(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

// signRaw mints a token with arbitrary claims, bypassing the service's
// invariants, to exercise the invalid-data paths.
func signRaw(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestDecode_RejectsIncompleteOrUnknownPayloads(t *testing.T) {
	const secret = "secret"
	svc := newTestService(t, secret)
	ctx := context.Background()
	accountID := domain.NewAccountID().String()

	cases := map[string]jwt.MapClaims{
		"missing account_id": {"token_type": string(TypeAccess)},
		"missing token_type": {"account_id": accountID},
		"unknown token_type": {"account_id": accountID, "token_type": "refresh_token"},
		"garbage account_id": {"account_id": "not-a-uuid", "token_type": string(TypeAccess)},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Decode(ctx, signRaw(t, secret, claims))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func TestDecodeExpect_WrongTypeIsUnexpectedToken(t *testing.T) {
	svc := newTestService(t, "secret")
	ctx := context.Background()

	encoded, err := svc.Encode(ctx, Data{AccountID: domain.NewAccountID(), Type: TypeAccess})
	require.NoError(t, err)

	_, err = svc.DecodeExpect(ctx, encoded, TypeResetPassword)
	require.Error(t, err)
	require.True(t, IsUnexpectedToken(err))

	var de *dErrors.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, string(TypeResetPassword), de.Field("expected"))
	assert.Equal(t, string(TypeAccess), de.Field("actual"))
}

func TestDecodeExpect_MatchingTypePasses(t *testing.T) {
	svc := newTestService(t, "secret")
	ctx := context.Background()

	encoded, err := svc.Encode(ctx, Data{AccountID: domain.NewAccountID(), Type: TypeVerifyAccount})
	require.NoError(t, err)

	data, err := svc.DecodeExpect(ctx, encoded, TypeVerifyAccount)
	require.NoError(t, err)
	assert.Equal(t, TypeVerifyAccount, data.Type)
}

func TestVerifyAndResetTokensHaveNoExpiry(t *testing.T) {
	// The verify/reset flows mint non-expiring tokens; only
	// access tokens carry exp.
	svc := newTestService(t, "secret")
	ctx := context.Background()

	encoded, err := svc.Encode(ctx, Data{AccountID: domain.NewAccountID(), Type: TypeVerifyAccount})
	require.NoError(t, err)

	parsed, err := jwt.Parse(encoded, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp)

	access, err := svc.Encode(ctx, Data{AccountID: domain.NewAccountID(), Type: TypeAccess})
	require.NoError(t, err)
	parsed, err = jwt.Parse(access, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	_, hasExp = parsed.Claims.(jwt.MapClaims)["exp"]
	assert.True(t, hasExp)
}

package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "YELLOW SUBMARINE, BLACK WIZARDRY"

func TestMakers(t *testing.T) {
	for _, kind := range []string{KindJWT, KindPaseto} {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			maker, err := NewMaker(kind, testSecret)
			require.NoError(t, err)

			t.Run("round trip", func(t *testing.T) {
				token, issued, err := maker.CreateToken("judge", time.Minute)
				require.NoError(t, err)
				require.NotEmpty(t, token)

				payload, err := maker.VerifyToken(token)
				require.NoError(t, err)
				require.Equal(t, issued.ID, payload.ID)
				require.Equal(t, "judge", payload.Username)
				require.WithinDuration(t, issued.IssuedAt, payload.IssuedAt, time.Second)
				require.WithinDuration(t, issued.ExpiredAt, payload.ExpiredAt, time.Second)
			})

			t.Run("expired", func(t *testing.T) {
				token, _, err := maker.CreateToken("judge", -time.Minute)
				require.NoError(t, err)

				payload, err := maker.VerifyToken(token)
				require.ErrorIs(t, err, ErrExpiredToken)
				require.Nil(t, payload)
			})

			t.Run("tampered", func(t *testing.T) {
				token, _, err := maker.CreateToken("judge", time.Minute)
				require.NoError(t, err)

				payload, err := maker.VerifyToken(token + "hhh")
				require.ErrorIs(t, err, ErrInvalidToken)
				require.Nil(t, payload)
			})
		})
	}
}

func TestNewMakerRejectsShortSecrets(t *testing.T) {
	_, err := NewMaker(KindJWT, "short")
	require.Error(t, err)

	_, err = NewMaker(KindPaseto, "short")
	require.Error(t, err)

	_, err = NewMaker("rot13", testSecret)
	require.Error(t, err)

	_, err = NewPasetoMaker(testSecret + "!")
	require.Error(t, err)
}

func TestJWTRejectsOtherSecret(t *testing.T) {
	a, err := NewJWTMaker(testSecret)
	require.NoError(t, err)
	b, err := NewJWTMaker("ANOTHER SUBMARINE, WHITE WIZARDRY")
	require.NoError(t, err)

	token, _, err := a.CreateToken("judge", time.Minute)
	require.NoError(t, err)

	_, err = b.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

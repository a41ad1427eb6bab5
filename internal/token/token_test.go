package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/izthiaka/loumaa/internal/config"
	"github.com/izthiaka/loumaa/internal/model"
)

func testIssuer(accessTTL, refreshTTL time.Duration) *Issuer {
	return NewIssuer(config.TokenConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Issuer:     "loumaa-test",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
}

func testUser() *model.User {
	return &model.User{
		ID:        bson.NewObjectID(),
		Matricule: "AB12CD34EF",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(10*time.Hour, 48*time.Hour)
	user := testUser()

	signed, err := issuer.AccessToken(user)
	require.NoError(t, err)
	assert.Len(t, strings.Split(signed, "."), 3)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.Matricule, claims.Matricule)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "loumaa-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRefreshTokenLivesLonger(t *testing.T) {
	issuer := testIssuer(time.Hour, 48*time.Hour)
	user := testUser()

	refresh, err := issuer.RefreshToken(user)
	require.NoError(t, err)

	claims, err := issuer.Verify(refresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokensAreUnique(t *testing.T) {
	issuer := testIssuer(time.Hour, 48*time.Hour)
	user := testUser()

	first, err := issuer.AccessToken(user)
	require.NoError(t, err)
	second, err := issuer.AccessToken(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := testIssuer(-time.Minute, 48*time.Hour)

	signed, err := issuer.AccessToken(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := testIssuer(time.Hour, 48*time.Hour)
	other := NewIssuer(config.TokenConfig{
		Secret:     "ffffffffffffffffffffffffffffffff",
		Issuer:     "loumaa-test",
		AccessTTL:  time.Hour,
		RefreshTTL: 48 * time.Hour,
	})

	signed, err := other.AccessToken(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuer := testIssuer(time.Hour, 48*time.Hour)
	other := NewIssuer(config.TokenConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Issuer:     "someone-else",
		AccessTTL:  time.Hour,
		RefreshTTL: 48 * time.Hour,
	})

	signed, err := other.AccessToken(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := testIssuer(time.Hour, 48*time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/auth"
)

func newAuthServiceForTest() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := NewAuthService(users, nil, tokens, "messenger.local", zap.NewNop().Sugar())
	return svc, users
}

func TestSignUpCreatesSyntheticIdentity(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	sess, err := svc.SignUp(context.Background(), "+1 (555) 000-0001", "hunter22", "Alice")
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "+15550000001", sess.User.PhoneNormalized)
	assert.Equal(t, "+15550000001@messenger.local", sess.User.Email)
	assert.Equal(t, "Alice", sess.User.DisplayName)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.User.Online)
	assert.NotEqual(t, "hunter22", sess.User.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "", "hunter22", "Alice")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.SignUp(ctx, "+15550000001", "short", "Alice")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSignUpRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "+15550000001", "hunter22", "Alice")
	require.NoError(t, err)

	// same number, different formatting
	_, err = svc.SignUp(ctx, "+1 555 000 0001", "hunter22", "Alice Two")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestSignInWithWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "+15550000001", "hunter22", "Alice")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "+15550000001", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.SignIn(ctx, "+19990000000", "hunter22")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSignInAndOutFlipPresence(t *testing.T) {
	svc, users := newAuthServiceForTest()
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, "+15550000001", "hunter22", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, sess.User.ID))
	u, err := users.GetUser(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.False(t, u.Online)
	require.NotNil(t, u.LastSeen)

	again, err := svc.SignIn(ctx, "+1 (555) 000-0001", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, again.User.ID)
	assert.True(t, again.User.Online)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	sess, err := svc.SignUp(context.Background(), "+15550000001", "hunter22", "Alice")
	require.NoError(t, err)

	tokens := auth.NewManager("test-secret", time.Hour)
	claims, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)
}

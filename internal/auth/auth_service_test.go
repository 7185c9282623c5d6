package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spincraft-tracker/internal/auditlog"
	auditMock "spincraft-tracker/internal/auditlog/mock"
	"spincraft-tracker/internal/auth"
	autherrors "spincraft-tracker/internal/auth/errors"
	authMock "spincraft-tracker/internal/auth/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newVerifier(t *testing.T) *auth.StaticVerifier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewStaticVerifier("admin-1", "admin", "System Administrator", string(hash))
}

func TestStaticVerifier(t *testing.T) {
	v := newVerifier(t)
	ctx := context.Background()

	admin, err := v.Verify(ctx, "admin", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)
	assert.Equal(t, "admin", admin.Role)

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, err = v.Verify(ctx, "root", "s3cret!")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, err = v.Lookup(ctx, "admin-2")
	assert.ErrorIs(t, err, autherrors.ErrAdminNotFound)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues signed token and records login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audit := auditMock.NewMockRecorder(ctrl)
		svc := auth.NewService(newVerifier(t), audit, testSecret, time.Hour)

		audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e auditlog.Entry) error {
			assert.Equal(t, auditlog.ActionLogin, e.Action)
			assert.Equal(t, "admin-1", e.AdminID)
			return nil
		})

		resp, err := svc.Login(ctx, "admin", "s3cret!")
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Admin.Username)
		assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

		token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "admin-1", claims["admin_id"])
		assert.Equal(t, "System Administrator", claims["name"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := auth.NewService(newVerifier(t), auditMock.NewMockRecorder(ctrl), testSecret, time.Hour)

		_, err := svc.Login(ctx, "admin", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("audit failure does not block login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier := authMock.NewMockVerifier(ctrl)
		audit := auditMock.NewMockRecorder(ctrl)
		svc := auth.NewService(verifier, audit, testSecret, time.Hour)

		verifier.EXPECT().Verify(ctx, "admin", "pw").Return(auth.Admin{ID: "admin-1", Username: "admin"}, nil)
		audit.EXPECT().Record(ctx, gomock.Any()).Return(errors.New("store down"))

		resp, err := svc.Login(ctx, "admin", "pw")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}

func TestService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auth.NewService(newVerifier(t), auditMock.NewMockRecorder(ctrl), testSecret, time.Hour)

	resp, err := svc.Me(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "System Administrator", resp.Name)

	_, err = svc.Me(context.Background(), "someone-else")
	assert.ErrorIs(t, err, autherrors.ErrAdminNotFound)
}

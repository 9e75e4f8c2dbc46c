package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/inkwell-blog/core/internal/database"
	"github.com/inkwell-blog/core/internal/models"
	jwtpkg "github.com/inkwell-blog/core/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	jwtpkg.SetSecret("test-secret")
	failureDelay = 0

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService(t)

	u, p, err := svc.Signup(&SignupDTO{
		Email: "Alice@Example.com", Password: "correct horse", Username: "alice", FullName: "Alice L",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, u.ID, p.ID)
	require.Equal(t, "alice", p.Username)
	require.NotEqual(t, "correct horse", u.Password)

	_, _, err = svc.Signup(&SignupDTO{Email: "alice@example.com", Password: "x12345678", Username: "other"})
	require.ErrorIs(t, err, errEmailTaken)

	_, _, err = svc.Signup(&SignupDTO{Email: "b@example.com", Password: "x12345678", Username: "alice"})
	require.ErrorIs(t, err, errUsernameTaken)
}

func TestLoginAndLogout(t *testing.T) {
	svc, db := newTestService(t)

	_, _, err := svc.Signup(&SignupDTO{Email: "a@example.com", Password: "correct horse", Username: "alice"})
	require.NoError(t, err)

	_, _, err = svc.Login("a@example.com", "wrong", "1.2.3.4", "ua")
	require.ErrorIs(t, err, errBadCredentials)

	_, _, err = svc.Login("nobody@example.com", "whatever", "1.2.3.4", "ua")
	require.ErrorIs(t, err, errBadCredentials)

	token, u, err := svc.Login("A@example.com", "correct horse", "1.2.3.4", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtpkg.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.NotEmpty(t, claims.SessionID)

	var reloaded models.UserModel
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	require.NotNil(t, reloaded.LastLoginTime)
	require.Equal(t, "1.2.3.4", reloaded.LastLoginIP)

	sessions, err := svc.Sessions(u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, svc.Logout(u.ID, claims.SessionID))
	require.ErrorIs(t, svc.Logout(u.ID, claims.SessionID), errSessionGone)

	sessions, err = svc.Sessions(u.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestRevokeOtherSessions(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Signup(&SignupDTO{Email: "a@example.com", Password: "correct horse", Username: "alice"})
	require.NoError(t, err)

	t1, u, err := svc.Login("a@example.com", "correct horse", "1.1.1.1", "laptop")
	require.NoError(t, err)
	_, _, err = svc.Login("a@example.com", "correct horse", "2.2.2.2", "phone")
	require.NoError(t, err)

	claims, err := jwtpkg.Parse(t1)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeOtherSessions(u.ID, claims.SessionID))

	sessions, err := svc.Sessions(u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, claims.SessionID, sessions[0].ID)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)

	u0, _, err := svc.Signup(&SignupDTO{Email: "a@example.com", Password: "correct horse", Username: "alice"})
	require.NoError(t, err)

	u, p, err := svc.Me(u0.ID)
	require.NoError(t, err)
	require.Equal(t, u0.ID, u.ID)
	require.Equal(t, "alice", p.Username)
}

package auth

import (
	"testing"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *token.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens := token.NewService("test-secret", "test", time.Hour)
	// bcrypt.MinCost keeps the hashing fast in tests
	return NewService(store.NewUserStore(db), tokens, bcrypt.MinCost), tokens
}

func TestRegister(t *testing.T) {
	svc, tokens := newTestService(t)

	user, tok, err := svc.Register("Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash, "plaintext must never be stored")

	// the returned token is bound to the new identity
	claims, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = svc.Register("Imposter", "alice@example.com", "other-password")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	svc, tokens := newTestService(t)
	registered, _, err := svc.Register("Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	user, tok, err := svc.Authenticate("alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

// TestAuthenticate_IndistinguishableFailures pins the anti-enumeration rule:
// an unknown email and a wrong password must yield the same error.
func TestAuthenticate_IndistinguishableFailures(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Register("Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Authenticate("alice@example.com", "wrong-password")
	_, _, unknownEmail := svc.Authenticate("nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticate_IssuesFreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	_, regTok, err := svc.Register("Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // jwt iat/exp have second resolution

	_, loginTok, err := svc.Authenticate("alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, regTok, loginTok)
}

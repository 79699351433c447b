package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"leave-backend/internal/logger"
	"leave-backend/internal/model"
)

const testSecret = "test-secret"

func newPersonUsecase() (*PersonUsecase, *memPersons, *recordingNotifier) {
	persons := newMemPersons()
	notifier := &recordingNotifier{}
	now := func() time.Time { return time.Now() }
	return NewPersonUsecase(persons, notifier, testSecret, now, logger.NewTest()), persons, notifier
}

func TestPersonUsecase_CreateMailsGeneratedPassword(t *testing.T) {
	u, persons, notifier := newPersonUsecase()

	p, err := u.Create(NewPerson{
		LoginName:     " max ",
		FirstName:     "Max",
		LastName:      "Muster",
		Email:         "max@example.org",
		Roles:         []model.Role{model.RoleUser, model.RoleBoss},
		Notifications: []model.Notification{model.NotificationBoss},
	})

	require.NoError(t, err)
	assert.Equal(t, "max", p.LoginName)
	assert.Equal(t, []string{"userCreation"}, notifier.events)
	assert.Len(t, notifier.rawPassword, 12)
	stored := persons.byID[p.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(notifier.rawPassword)))
}

func TestPersonUsecase_CreateRejectsBossAndDepartmentHeadNotifications(t *testing.T) {
	u, persons, notifier := newPersonUsecase()

	_, err := u.Create(NewPerson{
		LoginName:     "max",
		Notifications: []model.Notification{model.NotificationBoss, model.NotificationDepartmentHead},
	})

	assert.ErrorIs(t, err, model.ErrConflictingNotifications)
	assert.Empty(t, persons.byID)
	assert.Empty(t, notifier.events)
}

func TestPersonUsecase_Login(t *testing.T) {
	u, persons, notifier := newPersonUsecase()
	created, err := u.Create(NewPerson{LoginName: "max", Roles: []model.Role{model.RoleUser, model.RoleOffice}})
	require.NoError(t, err)

	token, p, err := u.Login("max", notifier.rawPassword)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, float64(created.ID), claims["user_id"])
	assert.Equal(t, []any{"USER", "OFFICE"}, claims["roles"])

	_, _, err = u.Login("max", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = u.Login("nobody", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := persons.byID[created.ID]
	inactive.Permissions = []model.PersonPermission{{Role: model.RoleInactive}}
	persons.byID[created.ID] = inactive
	_, _, err = u.Login("max", notifier.rawPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = u.Actor(created.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPersonUsecase_ActorNotFound(t *testing.T) {
	u, _, _ := newPersonUsecase()

	_, err := u.Actor(42)

	assert.ErrorIs(t, err, ErrNotFound)
}

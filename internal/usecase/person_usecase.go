package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
)

const tokenLifetime = 24 * time.Hour

type PersonNotifier interface {
	SendUserCreationNotification(person model.Person, rawPassword string)
}

type PersonUsecase struct {
	repo      repository.PersonRepository
	notifier  PersonNotifier
	jwtSecret []byte
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewPersonUsecase(repo repository.PersonRepository, notifier PersonNotifier, jwtSecret string, now func() time.Time, logger *zap.SugaredLogger) *PersonUsecase {
	if now == nil {
		now = time.Now
	}
	return &PersonUsecase{
		repo:      repo,
		notifier:  notifier,
		jwtSecret: []byte(jwtSecret),
		now:       now,
		logger:    logger.Named("person"),
	}
}

// NewPerson is the data the office enters for a new account.
type NewPerson struct {
	LoginName     string
	FirstName     string
	LastName      string
	Email         string
	Roles         []model.Role
	Notifications []model.Notification
}

// Create stores a person with a generated password and mails the password to
// them.
func (u *PersonUsecase) Create(in NewPerson) (*model.Person, error) {
	person := model.Person{
		LoginName: strings.TrimSpace(in.LoginName),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	for _, r := range in.Roles {
		person.Permissions = append(person.Permissions, model.PersonPermission{Role: r})
	}
	for _, n := range in.Notifications {
		person.Notifications = append(person.Notifications, model.PersonNotification{Notification: n})
	}
	if err := person.CheckNotifications(); err != nil {
		return nil, err
	}

	// 1. Generate password
	rawPassword := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	person.Password = string(hashed)

	// 2. Simpan ke Database
	if err := u.repo.Create(&person); err != nil {
		return nil, fmt.Errorf("create person %s: %w", person.LoginName, err)
	}

	// 3. Kirim password lewat email
	u.notifier.SendUserCreationNotification(person, rawPassword)
	u.logger.Infow("Person created", "personID", person.ID, "loginName", person.LoginName)
	return &person, nil
}

// Login checks the password and issues a signed token carrying the person's
// ID and roles.
func (u *PersonUsecase) Login(loginName, password string) (string, *model.Person, error) {
	person, err := u.repo.FindByLoginName(loginName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if person.HasRole(model.RoleInactive) {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":    person.ID,
		"login_name": person.LoginName,
		"roles":      person.RoleNames(),
		"exp":        u.now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, person, nil
}

// Actor loads the person behind an authenticated request.
func (u *PersonUsecase) Actor(id uint) (*model.Person, error) {
	person, err := u.repo.FindByID(id)
	if err := lookup(err, "person", id); err != nil {
		return nil, err
	}
	if person.HasRole(model.RoleInactive) {
		return nil, fmt.Errorf("person %d is inactive: %w", id, ErrForbidden)
	}
	return person, nil
}

func (u *PersonUsecase) GetAll() ([]model.Person, error) {
	return u.repo.GetAll()
}

package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

// AuthService handles register/login business logic.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register creates a new customer account; duplicate emails are rejected.
func (s *AuthService) Register(email, password, firstName, lastName, phone string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		PhoneNumber: strings.TrimSpace(phone),
		Role:        entity.RoleCustomer,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

// SetRole is the admin path for promoting owners and drivers.
func (s *AuthService) SetRole(userID uint, role string) error {
	switch role {
	case entity.RoleCustomer, entity.RoleOwner, entity.RoleDriver, entity.RoleAdmin:
	default:
		return errors.New("invalid role")
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Role = role
	return s.userRepo.Save(user)
}

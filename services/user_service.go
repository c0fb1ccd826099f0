package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", utils.ErrUnauthorized)

type RegisterInput struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Username    string  `json:"username" validate:"required,min=3,max=100"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService registers accounts and issues access tokens.
type UserService struct {
	users  *repository.UserRepo
	tokens *utils.TokenManager
	now    func() time.Time
}

func NewUserService(users *repository.UserRepo, tokens *utils.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens, now: time.Now}
}

// Register creates a customer account. Staff accounts are provisioned by EnsureUser.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.create(ctx, in, models.RoleCustomer)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role models.UserRole) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:       in.Email,
		Username:    strings.TrimSpace(in.Username),
		Password:    string(hashed),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Role:        role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, utils.ErrConstraintViolation) {
			return nil, fmt.Errorf("email or username already registered: %w", utils.ErrConstraintViolation)
		}
		return nil, err
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	return user, nil
}

// EnsureUser creates an account with the given role unless the email is already registered.
func (s *UserService) EnsureUser(ctx context.Context, email, password string, role models.UserRole) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}
	username := strings.SplitN(email, "@", 2)[0]
	return s.create(ctx, RegisterInput{Email: email, Username: username, Password: password}, role)
}

// Login checks the credentials and returns a signed token for the user.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		utils.ErrorLogger.Warnf("record last login for user %d: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	return token, user, nil
}

func (s *UserService) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

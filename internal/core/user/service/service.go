package userapp

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	followPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/follow"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserService handles accounts, tokens and moderation.
type UserService struct {
	UserRepository   userPort.UserRepository
	FollowRepository followPort.FollowRepository
	Logger           *zap.Logger
	jwtKey           []byte
	tokenTTL         time.Duration
}

func NewUserService(repo userPort.UserRepository, followRepo followPort.FollowRepository, jwtKey []byte, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository:   repo,
		FollowRepository: followRepo,
		Logger:           logger,
		jwtKey:           jwtKey,
		tokenTTL:         tokenTTL,
	}
}

// RegisterUser creates a CLIENT account.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*userPort.UserDTO, error) {
	return s.createUser(ctx, name, email, password, userEntity.RoleClient)
}

// CreateAdmin creates an ADMIN account; used by the CLI to bootstrap moderation.
func (s *UserService) CreateAdmin(ctx context.Context, name, email, password string) (*userPort.UserDTO, error) {
	return s.createUser(ctx, name, email, password, userEntity.RoleAdmin)
}

func (s *UserService) createUser(ctx context.Context, name, email, password string, role userEntity.Role) (*userPort.UserDTO, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !emailRegex.MatchString(email) {
		return nil, apperr.Validation("invalid email")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validation("password must have at least %d characters", minPasswordLength)
	}

	existing, err := s.UserRepository.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperr.Conflict("email already registered")
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}

	s.Logger.Info("User registered", zap.String("userID", u.ID.String()), zap.String("role", string(u.Role)))
	return userPort.ToUserDTO(u), nil
}

// LoginUser checks credentials and issues a JWT. Blocked accounts cannot log in.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}
	if !u.IsActive {
		return nil, apperr.Forbidden("account is blocked")
	}

	token, expiresAt, err := GenerateToken(s.jwtKey, u, s.tokenTTL, time.Now())
	if err != nil {
		return nil, err
	}

	return &userPort.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        userPort.ToUserDTO(u),
	}, nil
}

// VerifyToken resolves a bearer token to the caller identity.
func (s *UserService) VerifyToken(token string) (*Identity, error) {
	id, err := ParseToken(s.jwtKey, token)
	if err != nil {
		return nil, invalidToken(err)
	}
	return id, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*userPort.UserDTO, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userPort.ToUserDTO(u))
	}
	return dtos, nil
}

// GetProfile returns a user with follow counts; IsFollowing is set when the viewer is someone else.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uuid.UUID) (*userPort.ProfileDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.FollowRepository.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowRepository.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &userPort.ProfileDTO{
		UserDTO:        *userPort.ToUserDTO(u),
		FollowersCount: followers,
		FollowingCount: following,
	}
	if viewerID != userID {
		isFollowing, err := s.FollowRepository.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = &isFollowing
	}
	return profile, nil
}

// SetActive blocks (false) or unblocks (true) an account.
func (s *UserService) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("User active flag changed", zap.String("userID", userID.String()), zap.Bool("isActive", active))
	return userPort.ToUserDTO(u), nil
}

// ChangeRole sets the role. Anything other than the exact "ADMIN" becomes CLIENT.
func (s *UserService) ChangeRole(ctx context.Context, userID uuid.UUID, role string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.SetRole(ctx, userID, userEntity.ParseRole(role))
	if err != nil {
		return nil, err
	}
	s.Logger.Info("User role changed", zap.String("userID", userID.String()), zap.String("role", string(u.Role)))
	return userPort.ToUserDTO(u), nil
}

func invalidCredentials() error {
	return apperr.Unauthorized("invalid credentials")
}

func invalidToken(cause error) error {
	return apperr.Unauthorized(cause.Error())
}

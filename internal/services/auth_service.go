package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

// Identity is the set of claims the identity provider puts in its tokens.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            models.Role
}

// AuthService validates identity-provider tokens and keeps the local user
// table in sync with them.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	log        *logrus.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		log:        logger,
	}
}

// SignToken issues a token carrying id. A zero ttl uses the default of 24h.
func (s *AuthService) SignToken(id Identity, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.tokenDurat
	}
	claims := jwt.MapClaims{
		"sub":               id.Subject,
		"email":             id.Email,
		"first_name":        id.FirstName,
		"last_name":         id.LastName,
		"profile_image_url": id.ProfileImageURL,
		"exp":               time.Now().Add(ttl).Unix(),
		"iat":               time.Now().Unix(),
	}
	if id.Role != "" {
		claims["role"] = string(id.Role)
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning its identity claims.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.WithError(err).Debug("Token validation failed")
		return nil, apperrors.Unauthenticated("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthenticated("Invalid or expired token")
	}

	id := &Identity{
		Subject:         stringClaim(claims, "sub"),
		Email:           stringClaim(claims, "email"),
		FirstName:       stringClaim(claims, "first_name"),
		LastName:        stringClaim(claims, "last_name"),
		ProfileImageURL: stringClaim(claims, "profile_image_url"),
		Role:            models.Role(stringClaim(claims, "role")),
	}
	if id.Subject == "" {
		return nil, apperrors.Unauthenticated("Token has no subject")
	}
	return id, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// Login upserts the user described by id. The role claim wins when it is a
// known role; otherwise an existing user keeps theirs and a new user becomes
// a customer.
func (s *AuthService) Login(ctx context.Context, id *Identity) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id.Subject)
	if err != nil {
		return nil, internalError("Failed to load user", err)
	}

	role := models.RoleCustomer
	switch {
	case id.Role == models.RoleCustomer || id.Role == models.RoleVendor:
		role = id.Role
	case existing != nil:
		role = existing.Role
	}

	user := &models.User{
		ID:              id.Subject,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
		Role:            role,
	}
	if id.Email != "" {
		email := id.Email
		user.Email = &email
	}

	stored, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		return nil, internalError("Failed to save user", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": stored.ID, "role": stored.Role}).Info("User logged in")
	return stored, nil
}

// Authenticate resolves a bearer token to the caller it acts for. Tokens of
// users that never logged in are rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (models.Caller, error) {
	id, err := s.ValidateToken(tokenString)
	if err != nil {
		return models.Caller{}, err
	}
	user, err := s.userRepo.GetByID(ctx, id.Subject)
	if err != nil {
		return models.Caller{}, internalError("Failed to load user", err)
	}
	if user == nil {
		return models.Caller{}, apperrors.Unauthenticated("Unknown user, log in first")
	}
	return models.Caller{ID: user.ID, Role: user.Role}, nil
}

// CurrentUser returns the caller's stored profile.
func (s *AuthService) CurrentUser(ctx context.Context, caller models.Caller) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, internalError("Failed to fetch user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user with ID %s not found", caller.ID)
	}
	return user, nil
}

// UpdateProfile applies the allow-listed profile fields of req.
func (s *AuthService) UpdateProfile(ctx context.Context, caller models.Caller, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.CurrentUser(ctx, caller)
	if err != nil {
		return nil, err
	}

	var fields []string
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		fields = append(fields, "first_name")
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		fields = append(fields, "last_name")
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
		fields = append(fields, "profile_image_url")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user, fields...); err != nil {
		return nil, internalError("Failed to update user", err)
	}
	return user, nil
}

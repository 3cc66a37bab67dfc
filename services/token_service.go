package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair holds the generated access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Claims is the identity carried by a validated token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
	Type   string
}

// TokenService creates and validates JWTs.
type TokenService interface {
	GenerateTokenPair(user *models.User) (*TokenPair, error)
	ValidateToken(tokenStr, expectedType string) (*Claims, error)
}

type jwtTokenService struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService signs tokens with HS256 using secret.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) TokenService {
	return &jwtTokenService{
		secretKey:  []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *jwtTokenService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateToken(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ValidateToken parses tokenStr and checks its signature, expiry and type.
// An empty expectedType accepts any type.
func (s *jwtTokenService) ValidateToken(tokenStr, expectedType string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	typ, _ := mc["typ"].(string)
	if expectedType != "" && typ != expectedType {
		return nil, fmt.Errorf("invalid token type")
	}

	sub, _ := mc["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject")
	}

	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   models.ParseRole(role),
		Type:   typ,
	}, nil
}

func (s *jwtTokenService) generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role().String(),
		"typ":   tokenType,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	if tokenType == TokenTypeRefresh {
		claims["jti"] = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

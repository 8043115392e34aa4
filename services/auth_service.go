package services

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
)

const accessTokenTTL = 24 * time.Hour

// Claims is the JWT payload issued for a redeemed access code.
type Claims struct {
	Role   models.AccessRole `json:"role"`
	TeamID *int              `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// MintCode generates a fresh entry code, stores its bcrypt hash and
	// returns the plaintext once. Player codes require a team.
	MintCode(ctx context.Context, role models.AccessRole, teamID *int) (string, *models.AccessCode, error)
	// Redeem exchanges a valid entry code for a signed bearer token.
	Redeem(ctx context.Context, code string) (token string, claims *Claims, err error)
	ParseToken(tokenString string) (*Claims, error)
}

type authService struct {
	accessCodeRepo repositories.AccessCodeRepository
	teamRepo       repositories.TeamRepository
	jwtSecret      []byte
}

func NewAuthService(accessCodeRepo repositories.AccessCodeRepository, teamRepo repositories.TeamRepository, jwtSecret string) AuthService {
	return &authService{
		accessCodeRepo: accessCodeRepo,
		teamRepo:       teamRepo,
		jwtSecret:      []byte(jwtSecret),
	}
}

func (s *authService) MintCode(ctx context.Context, role models.AccessRole, teamID *int) (string, *models.AccessCode, error) {
	if role != models.RoleAdmin && role != models.RolePlayer {
		return "", nil, fmt.Errorf("%w: unknown access role %q", ErrValidationFailed, role)
	}
	if role == models.RolePlayer {
		if teamID == nil {
			return "", nil, ErrTeamNotFound
		}
		if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return "", nil, ErrTeamNotFound
			}
			return "", nil, fmt.Errorf("failed to check team %d: %w", *teamID, err)
		}
	} else {
		teamID = nil
	}

	plaintext, err := generateCode()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash access code: %w", err)
	}

	entry := &models.AccessCode{CodeHash: string(hash), Role: role, TeamID: teamID}
	if err := s.accessCodeRepo.Create(ctx, entry); err != nil {
		return "", nil, fmt.Errorf("failed to store access code: %w", err)
	}
	return plaintext, entry, nil
}

func (s *authService) Redeem(ctx context.Context, code string) (string, *Claims, error) {
	if code == "" {
		return "", nil, ErrInvalidAccessCode
	}

	// Bcrypt hashes are salted, so the presented code cannot be looked up
	// directly; compare against every stored hash. The table stays small.
	codes, err := s.accessCodeRepo.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load access codes: %w", err)
	}

	var matched *models.AccessCode
	for i := range codes {
		if bcrypt.CompareHashAndPassword([]byte(codes[i].CodeHash), []byte(code)) == nil {
			matched = &codes[i]
			break
		}
	}
	if matched == nil {
		return "", nil, ErrInvalidAccessCode
	}

	now := time.Now()
	claims := &Claims{
		Role:   matched.Role,
		TeamID: matched.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("code:%d", matched.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims, nil
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessCode
	}
	return claims, nil
}

// generateCode returns a 16-character uppercase code without padding,
// e.g. "K7Q2M9XJ4ZP3RT6W".
func generateCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

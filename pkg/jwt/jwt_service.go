package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"

	"little-lemon/domain"
	"little-lemon/internal/utils"
)

const tokenLifetime = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userID string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, error)
	}

	// Group membership is not part of the token. It is looked up on every
	// request.
	jwtUserClaim struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService() JWTService {
	secretKey := utils.GetConfig("JWT_SECRET")
	if secretKey == "" {
		log.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "LITTLE-LEMON",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		userID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Errorf("failed to sign token for user %s: %v", userID, err)
		return "", err
	}
	return signed, nil
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	t, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.Issuer != j.issuer {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}

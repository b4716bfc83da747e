package jwt

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const TokenTTL = 120 * time.Minute

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

type (
	JWTService interface {
		GenerateTokenUser(userID string, sessionID string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (Claims, error)
	}

	// Claims is what a valid token resolves to.
	Claims struct {
		UserID    string
		SessionID string
		Role      string
	}

	jwtUserClaim struct {
		UserID    string `json:"user_id"`
		SessionID string `json:"session_id"`
		Role      string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

// NewJWTService reads JWT_SECRET from config and refuses an empty one.
func NewJWTService() (JWTService, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return NewJWTServiceWithSecret(secret), nil
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "AGRI-ASSISTANT",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, sessionID string, role string) (string, error) {
	if j.secretKey == "" {
		return "", ErrMissingSecret
	}

	now := j.now()
	claims := jwtUserClaim{
		userID,
		sessionID,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	if j.secretKey == "" {
		return nil, ErrMissingSecret
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (Claims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domain.ErrTokenExpired
		}
		return Claims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.SessionID == "" {
		return Claims{}, domain.ErrTokenInvalid
	}

	return Claims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		Role:      claims.Role,
	}, nil
}

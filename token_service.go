package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService signs and validates JWTs with a single symmetric key. The key
// is fixed at construction; an empty key is a configuration error and should
// be caught at startup, not per call.
type TokenService interface {
	Sign(subject string, issuedAt, expiresAt time.Time) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
}

type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

func NewTokenService(cfg Config, lgr ...Logger) TokenService {
	logger := Logger(defLogger{})
	if len(lgr) > 0 && lgr[0] != nil {
		logger = lgr[0]
	}

	return &TokenServiceImpl{
		signingKey: []byte(cfg.GetSigningKey()),
		issuer:     cfg.GetIssuer(),
		audience:   jwt.ClaimStrings(cfg.GetAudience()),
		logger:     logger,
	}
}

// Sign mints an HS256 token carrying sub, iat, exp and a generated jti.
func (ts *TokenServiceImpl) Sign(subject string, issuedAt, expiresAt time.Time) (string, error) {
	if len(ts.signingKey) == 0 {
		return "", goerrors.New("signing key is not configured", goerrors.CategoryInternal)
	}

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   subject,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a token. Expired tokens map to
// ErrTokenExpired; every other failure maps to ErrTokenMalformed so callers
// never mistake a tampered token for a merely stale one.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		opts = append(opts, jwt.WithAudience(ts.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, opts...)

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		ts.logger.Debug("token validation failed: %v", err)
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(goerrors.CodeUnauthorized)
	}

	if !token.Valid || claims.Subject() == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

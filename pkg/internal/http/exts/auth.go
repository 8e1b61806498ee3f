package exts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// ViewerClaims is the token issued by the auth service, the subject is the account id.
type ViewerClaims struct {
	Name string `json:"name"`
	Nick string `json:"nick"`
	jwt.RegisteredClaims
}

type AccountEnsurer interface {
	EnsureAccount(ctx context.Context, id uint, name, nick string) (models.Account, error)
}

func NewViewerToken(secret []byte, id uint, name, nick string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ViewerClaims{
		Name: name,
		Nick: nick,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseViewerToken(secret []byte, raw string) (*ViewerClaims, uint, error) {
	token, err := jwt.ParseWithClaims(raw, &ViewerClaims{}, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, 0, err
	}

	claims, ok := token.Claims.(*ViewerClaims)
	if !ok || !token.Valid {
		return nil, 0, errors.New("invalid token")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil || id == 0 {
		return nil, 0, fmt.Errorf("invalid token subject %q", claims.Subject)
	}
	return claims, uint(id), nil
}

// ContextMiddleware resolves the viewer of the request. Requests without a token stay anonymous.
func ContextMiddleware(secret []byte, accounts AccountEnsurer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if len(header) == 0 {
			return c.Next()
		}
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || len(raw) == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "incorrectly formatted authorization header")
		}

		claims, id, err := ParseViewerToken(secret, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		account, err := accounts.EnsureAccount(c.UserContext(), id, claims.Name, claims.Nick)
		if err != nil {
			log.Error().Err(err).Uint("account", id).Msg("An error occurred when syncing account...")
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Locals("user", account)
		return c.Next()
	}
}

// GetViewer returns nil for anonymous requests.
func GetViewer(c *fiber.Ctx) *models.Account {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user
	}
	return nil
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if GetViewer(c) == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return nil
}

package middleware

import (
	"crypto/subtle"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/avatarctic/travel-planner/internal/utils"
)

const basicAuthRealm = "Travel Planner"

// BasicAuthMiddleware guards routes with HTTP Basic credentials. It is a
// pass-through when no credentials are configured.
type BasicAuthMiddleware struct {
	user         string
	passwordHash []byte
	enabled      bool
	logger       *logrus.Logger
}

// NewBasicAuthMiddleware hashes password once so requests are checked with bcrypt.
func NewBasicAuthMiddleware(user, password string, logger *logrus.Logger) (*BasicAuthMiddleware, error) {
	m := &BasicAuthMiddleware{user: user, logger: logger}
	if user == "" || password == "" {
		return m, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash basic auth password: %w", err)
	}
	m.passwordHash = hash
	m.enabled = true

	if issues := utils.PasswordWeaknesses(password); len(issues) > 0 && logger != nil {
		logger.WithField("issues", issues).Warn("basic auth password is weak")
	}
	return m, nil
}

// Enabled reports whether credentials are enforced.
func (m *BasicAuthMiddleware) Enabled() bool { return m.enabled }

// Handler returns the echo middleware enforcing the configured credentials.
func (m *BasicAuthMiddleware) Handler() echo.MiddlewareFunc {
	if !m.enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echoMiddleware.BasicAuthWithConfig(echoMiddleware.BasicAuthConfig{
		Realm:     basicAuthRealm,
		Validator: m.validate,
	})
}

func (m *BasicAuthMiddleware) validate(user, password string, c echo.Context) (bool, error) {
	// Both checks always run.
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	if userOK && passOK {
		return true, nil
	}
	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("basic auth rejected")
	}
	return false, nil
}

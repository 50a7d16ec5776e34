// Package middleware содержит HTTP middleware сервиса меню и заказов.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/menu-order-system/internal/model"
)

type contextKey string

const userKey contextKey = "user"

const (
	capabilityCookieName = "capability_token"
	capabilityCookieTTL  = 30 * 24 * time.Hour

	roleAdmin = "admin"
	roleUser  = "user"
)

// CapabilityMiddleware извлекает из подписанного cookie личность вызывающего
// и признак администратора. Аутентификация как таковая вне зоны
// ответственности сервиса: middleware лишь проверяет подпись токена,
// выданного внешним слоем.
type CapabilityMiddleware struct {
	secretKey []byte
}

// NewCapabilityMiddleware создаёт middleware с указанным секретным ключом.
func NewCapabilityMiddleware(secret string) *CapabilityMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &CapabilityMiddleware{
		secretKey: key,
	}
}

// Middleware добавляет пользователя в контекст запроса, если cookie валиден.
// Запросы без cookie или с неверной подписью проходят дальше анонимно:
// доступ ограничивают только обработчики, обёрнутые в RequireAdmin.
func (c *CapabilityMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(capabilityCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, ok := c.parseToken(cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает запрос только при наличии админских прав.
func (c *CapabilityMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.IsAdmin {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCapabilityCookie устанавливает подписанный cookie для указанного пользователя.
func (c *CapabilityMiddleware) SetCapabilityCookie(w http.ResponseWriter, user model.User) {
	cookie := &http.Cookie{
		Name:     capabilityCookieName,
		Value:    c.signToken(user),
		Path:     "/",
		Expires:  time.Now().Add(capabilityCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (c *CapabilityMiddleware) signToken(user model.User) string {
	role := roleUser
	if user.IsAdmin {
		role = roleAdmin
	}
	payload := strconv.FormatInt(user.ID, 10) + "." + role

	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(payload))
	signature := mac.Sum(nil)

	return payload + "." + hex.EncodeToString(signature)
}

func (c *CapabilityMiddleware) parseToken(token string) (model.User, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return model.User{}, false
	}

	idStr, role, signature := parts[0], parts[1], parts[2]
	if role != roleAdmin && role != roleUser {
		return model.User{}, false
	}

	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(idStr + "." + role))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return model.User{}, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return model.User{}, false
	}

	return model.User{ID: id, IsAdmin: role == roleAdmin}, true
}

// GetUserFromContext извлекает пользователя из контекста запроса.
func GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

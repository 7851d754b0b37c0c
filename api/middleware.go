package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/auth"
	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	ctxEmailKey = "email"
	ctxRoleKey  = "role"
)

// Auth verifies the bearer token and stores the decoded identity in the
// context. Handlers downstream consume claims only, never the raw token.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		_, role := actorFrom(c)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (string, domain.Role) {
	email, _ := c.Get(ctxEmailKey)
	role, _ := c.Get(ctxRoleKey)
	e, _ := email.(string)
	r, _ := role.(string)
	return e, domain.Role(r)
}

type rateClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimit keeps a per-IP token bucket; stale entries are swept every
// minute. Applied to the credential endpoints only.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*rateClient)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.seen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &rateClient{lim: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[ip] = cl
		}
		cl.seen = time.Now()
		mu.Unlock()

		if !cl.lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// statusFor maps service error kinds onto response statuses so clients can
// tell a retryable infrastructure failure from a business rejection.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTarget), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

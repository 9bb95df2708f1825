package auth

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Caller identity is the wallet address the gateway verified a
// signature for, passed down in X-Wallet-Address. Addresses are
// normalized to lowercase before they reach the engine so creator and
// backer comparisons are byte-exact.

const accountKey = "wallet_account"

var addressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WithAccount parses X-Wallet-Address when present and stashes the
// normalized account in the request context. A malformed address is
// rejected outright; a missing one is fine for read-only routes.
func WithAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Wallet-Address"))
		if raw == "" {
			c.Next()
			return
		}
		if !addressRe.MatchString(raw) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid wallet address"})
			return
		}
		c.Set(accountKey, strings.ToLower(raw))
		c.Next()
	}
}

// RequireAccount guards routes that need a caller identity.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(accountKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "wallet address required"})
			return
		}
		c.Next()
	}
}

// Account returns the caller's wallet account, or "" when the request
// carried none.
func Account(c *gin.Context) domain.Account {
	return domain.Account(c.GetString(accountKey))
}

package http

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
)

const flashCookie = "taskr_flash"

// setFlash stores a one-shot message shown on the next rendered page.
// The value is base64 encoded so punctuation survives the cookie header.
func setFlash(c *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	c.SetCookie(flashCookie, encoded, 60, "/", "", false, true)
}

// popFlash returns the pending flash message, if any, and clears it.
func popFlash(c *gin.Context) string {
	encoded, err := c.Cookie(flashCookie)
	if err != nil || encoded == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	message, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(message)
}

// Package controller holds the helpers shared by the per-resource handler
// packages.
package controller

import (
	"net/http"
	"strconv"

	"taskboard/apperr"

	"github.com/gin-gonic/gin"
)

// UserID returns the authenticated user id stored by the token middleware.
func UserID(c *gin.Context) uint {
	return c.MustGet("userId").(uint)
}

// UintParam parses a numeric path parameter. Non-numeric ids are rejected
// with 400 before any service code runs.
func UintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// Error writes the service error with its taxonomy-mapped status code.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}

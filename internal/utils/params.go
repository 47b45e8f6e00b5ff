package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetPathID reads a path parameter holding a record id. Ids are opaque, so
// only emptiness is checked here; the store decides whether one exists.
func GetPathID(ctx *gin.Context, name string) (string, error) {
	id := strings.TrimSpace(ctx.Param(name))

	if id == "" {
		return "", errors.New("ID not found in path")
	}

	return id, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("Authorization token is required")
	}

	parts := strings.SplitN(header, " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("Authorization header format must be Bearer {token}")
	}

	return strings.TrimSpace(parts[1]), nil
}

package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/types"
)

func GetCurrentPrincipal(ctx *gin.Context) (*auth.Principal, error) {
	value, exists := ctx.Get(types.ContextPrincipalKey)

	if !exists {
		return nil, fmt.Errorf("User not authenticated")
	}

	principal, ok := value.(*auth.Principal)

	if !ok || principal == nil {
		return nil, fmt.Errorf("Invalid principal type in context")
	}

	return principal, nil
}

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	principal, err := GetCurrentPrincipal(ctx)

	if err != nil {
		return "", err
	}

	return principal.UserID, nil
}

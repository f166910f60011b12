package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/maxlgn/counterhub/models"
)

const (
	jwtClaimUserID   = "user_id"
	jwtClaimRole     = "role"
	jwtClaimApproved = "approved"
)

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("user claims not found in context")
	}
	return claims, nil
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return 0, err
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	// encoding/json decodes numeric claims as float64.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimUserID, userIDClaim)
	}
	userID := int(userIDFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
	return role, nil
}

func IsApprovedFromContext(ctx context.Context) (bool, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return false, err
	}
	approved, ok := claims[jwtClaimApproved].(bool)
	if !ok {
		return false, fmt.Errorf("missing or invalid '%s' claim in token", jwtClaimApproved)
	}
	return approved, nil
}

// ViewerIDFromContext resolves the authenticated user id for endpoints
// that also serve anonymous requests; it returns 0 when no valid claims
// are attached.
func ViewerIDFromContext(ctx context.Context) int {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return 0
	}
	return userID
}

// package: internals/helpers/auth
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eventpages_backend/internals/constants"
)

/* ============================================
   Locals Keys (set by the JWT middleware)
   ============================================ */

const (
	LocRole           = "role"            // string
	LocUserID         = "user_id"         // string | uuid
	LocOrganizationID = "organization_id" // string | uuid
	LocJWTClaims      = "jwt_claims"      // jwt.MapClaims
)

// AuthContext is what every admin handler needs from the caller's token.
type AuthContext struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
}

func (a AuthContext) IsOrgAdmin() bool {
	for _, r := range constants.OrgAdminRoles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	switch v := c.Locals(key).(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, false
		}
		return id, true
	default:
		return uuid.Nil, false
	}
}

// GetAuthContext returns 401 when the user is unknown and 403 when the
// token is not bound to an organization.
func GetAuthContext(c *fiber.Ctx) (AuthContext, error) {
	uid, ok := localUUID(c, LocUserID)
	if !ok {
		return AuthContext{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	oid, ok := localUUID(c, LocOrganizationID)
	if !ok {
		return AuthContext{}, fiber.NewError(fiber.StatusForbidden, "No organization in token")
	}
	role, _ := c.Locals(LocRole).(string)
	return AuthContext{
		OrganizationID: oid,
		UserID:         uid,
		Role:           strings.ToLower(strings.TrimSpace(role)),
	}, nil
}

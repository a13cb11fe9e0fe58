package constants

import "fmt"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

const ErrOnlyAdminsCanAccess = "Only organization admins or owners can access %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleMember,
		RoleAdmin,
		RoleOwner,
	}

	OrgAdminRoles = []string{
		RoleAdmin,
		RoleOwner,
	}
)

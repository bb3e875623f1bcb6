package auth

import "github.com/gin-gonic/gin"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUpload Role = "upload"
	RoleViewer Role = "viewer"
)

// CurrentUser = info singkat user yang lagi login
type CurrentUser struct {
	ID       int64
	Email    string
	Username string
	Role     Role
}

const ContextUserKey = "currentUser"

func (cu CurrentUser) IsAdmin() bool {
	return cu.Role == RoleAdmin
}

// Helper untuk ambil current user di handler
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	cu, ok := v.(CurrentUser)
	return cu, ok
}

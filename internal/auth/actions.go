package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Action = operasi mutasi yang di-gate oleh role.
type Action string

const (
	ActionAddVehicle     Action = "vehicle:add"
	ActionAddComplaint   Action = "complaint:add"
	ActionClearComplaint Action = "complaint:set-status"
	ActionAddReading     Action = "odometer:add"
	ActionUploadFile     Action = "file:upload"
	ActionManageUsers    Action = "user:manage"
)

// CanPerform = satu-satunya tempat aturan role vs action.
// Jangan bandingkan string role langsung di handler.
func CanPerform(role Role, action Action) bool {
	switch action {
	case ActionAddVehicle, ActionClearComplaint, ActionManageUsers:
		return role == RoleAdmin
	case ActionAddComplaint, ActionAddReading, ActionUploadFile:
		return role == RoleAdmin || role == RoleUpload
	default:
		return false
	}
}

// RequireAction menolak request sebelum handler jalan kalau role
// current user tidak boleh melakukan action tersebut.
func RequireAction(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		cu, ok := GetCurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "user belum login",
			})
			c.Abort()
			return
		}
		if !CanPerform(cu.Role, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "role " + string(cu.Role) + " tidak boleh melakukan operasi ini",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

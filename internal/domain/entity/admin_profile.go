package entity

import "github.com/google/uuid"

// AdminProfile represents admin-specific profile data.
// Admin accounts are never self-registered: cmd/seed creates them.
type AdminProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AdminLevel  int       `gorm:"not null;default:1" json:"admin_level"`
	Permissions JSON      `gorm:"type:jsonb" json:"permissions,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

// Admin permission names checked by the verification usecase
const (
	PermissionVerifyDoctors = "verify_doctors"
	PermissionViewAuditLogs = "view_audit_logs"
)

// HasPermission checks the permission list stored in the JSONB column.
func (a *AdminProfile) HasPermission(name string) bool {
	raw, ok := a.Permissions["permissions"]
	if !ok {
		return false
	}
	list, ok := raw.([]interface{})
	if !ok {
		return false
	}
	for _, p := range list {
		if s, ok := p.(string); ok && s == name {
			return true
		}
	}
	return false
}

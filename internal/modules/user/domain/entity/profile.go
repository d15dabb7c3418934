package entity

import "time"

const (
	RoleOwner    = "owner"
	RoleMechanic = "mechanic"
	RoleDriver   = "driver"
	RoleViewer   = "viewer"
)

// Profile 系统用户资料，认证由外部完成，这里只读取角色与邮箱
type Profile struct {
	ID       string `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	FullName string `gorm:"column:full_name;type:varchar(128)" json:"full_name"`
	Role     string `gorm:"column:role;type:varchar(32);index" json:"role"`
	Email    string `gorm:"column:email;type:varchar(255);index" json:"email"`
	// nil 表示未设置，按开启处理
	EmailDigestEnabled *bool     `gorm:"column:email_digest_enabled" json:"email_digest_enabled"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// WantsDigestEmail 有邮箱且没有显式关闭
func (p Profile) WantsDigestEmail() bool {
	if p.Email == "" {
		return false
	}
	return p.EmailDigestEnabled == nil || *p.EmailDigestEnabled
}

// Actor 发起操作的用户
type Actor struct {
	ID   string
	Role string
}

// CanManageTrendActions owner 和 mechanic 可以维护趋势动作
func (a Actor) CanManageTrendActions() bool {
	return a.Role == RoleOwner || a.Role == RoleMechanic
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

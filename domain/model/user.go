package model

// Application roles, assigned by the upstream identity provider.
const (
	RoleFinance   = "finance"
	RoleLead      = "lead"
	RoleManager   = "manager"
	RoleRecruiter = "recruiter"
)

// AllowedRoles lists every role the API recognizes.
var AllowedRoles = []string{RoleFinance, RoleLead, RoleManager, RoleRecruiter}

// User is a local user record. Credentials live with the identity provider;
// only the username is meaningful here.
type User struct {
	ID             int    `json:"id" gorm:"primaryKey"`
	Username       string `json:"username" gorm:"uniqueIndex"`
	HashedPassword string `json:"-"`
}

func (User) TableName() string { return "users" }

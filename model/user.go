package model // import "github.com/bookgrove/bookgrove/model"

// Role is the type of a role.
type Role string

const (
	// RoleHost is the HOST role, the first signed-up user.
	RoleHost Role = "HOST"
	// RoleAdmin is the ADMIN role.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the USER role.
	RoleUser Role = "USER"
)

func (e Role) String() string {
	switch e {
	case RoleHost:
		return "HOST"
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "USER"
}

// RowStatus is the status of a row.
type RowStatus string

const (
	Normal   RowStatus = "NORMAL"
	Archived RowStatus = "ARCHIVED"
)

type User struct {
	ID int32 `json:"id"`

	RowStatus RowStatus `json:"row_status"`
	CreatedTs int64     `json:"created_ts"`
	UpdatedTs int64     `json:"updated_ts"`

	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"password_hash"`
	LastLoginTs  int64  `json:"last_login_ts"`
}

type FindUser struct {
	ID        *int32     `json:"id"`
	RowStatus *RowStatus `json:"row_status"`
	Username  *string    `json:"username"`
	Role      *Role      `json:"role"`
	Nickname  *string    `json:"nickname"`

	// The maximum number of users to return.
	Limit *int
}

type UserSignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type UserSigninRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NeverExpire bool   `json:"never_expire"`
}

package response

import (
	"github.com/bookgrove/bookgrove/model"
)

// UserResponse strips the password hash before the user leaves the server.
func UserResponse(user *model.User) *model.User {
	return &model.User{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Role:        user.Role,
		LastLoginTs: user.LastLoginTs,
	}
}

func UserListResponse(users []*model.User) []*model.User {
	var response []*model.User
	for _, user := range users {
		response = append(response, UserResponse(user))
	}
	return response
}

package validator

import (
	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/util"
)

func ValidateSignupRequest(s *store.Store, user *model.UserSignupRequest) error {
	if user == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "user is nil")
	}
	if user.Username == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "username is empty")
	}
	if !util.UIDMatcher.MatchString(user.Username) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "username is invalid")
	}
	if user.Password == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "password is empty")
	}
	if err := validatePassword(user.Password); err != nil {
		return err
	}
	if existing, _ := s.GetUser(&model.FindUser{Username: &user.Username}); existing != nil {
		return apperrors.ErrUsernameExists
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "password is too short")
	}
	return nil
}

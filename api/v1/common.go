package v1

import (
	"net/http"

	"github.com/bookgrove/bookgrove/http/request"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/store"
)

func getCurrentUser(r *http.Request, s *store.Store) (*model.User, error) {
	username := request.GetUsername(r)
	if username == "" {
		return nil, nil
	}

	user, err := s.GetUser(&model.FindUser{Username: &username})
	if err != nil {
		return nil, err
	}
	return user, nil
}

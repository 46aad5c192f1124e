package store

import (
	"fmt"
	"strings"

	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"go.uber.org/zap"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}
	if v := find.Nickname; v != nil {
		where, args = append(where, "nickname = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// Use response.UserResponse before returning a user to a client.
	query := `
		SELECT
			id,
			username,
			role,
			nickname,
			password_hash,
			created_ts,
			updated_ts,
			last_login_ts,
			row_status
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, row_status DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	// zap not support escape character, so need to fallback.
	// https://github.com/uber-go/zap/issues/963
	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		// The ordering of query results should be consistent with query var
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Role,
			&user.Nickname,
			&user.PasswordHash,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.LastLoginTs,
			&user.RowStatus,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`username`", "`role`", "`nickname`", "`password_hash`"}
	placeholder := []string{"?", "?", "?", "?"}
	args := []any{create.Username, create.Role, create.Nickname, create.PasswordHash}
	stmt := "INSERT INTO user (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, row_status, created_ts, updated_ts, last_login_ts"

	log.Fallback("Debug", fmt.Sprintf("CreateUser\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.RowStatus,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.LastLoginTs,
	); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	s.UserCache.Store(create.ID, create)
	return create, nil
}

func (s *Store) SetLastLogin(userID int32) error {
	stmt := `UPDATE user SET last_login_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, userID); err != nil {
		log.Error("Failed to update last login", zap.Error(err))
		return err
	}
	s.UserCache.Delete(userID)
	return nil
}

package store

import (
	"fmt"
	"strings"

	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/util"
	"go.uber.org/zap"
)

func (s *Store) GetReview(find *model.FindReview) (*model.Review, error) {
	if find.ID != nil {
		if cache, ok := s.ReviewCache.Load(*find.ID); ok {
			return cache.(*model.Review), nil
		}
	}

	list, err := s.ListReviews(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	review := list[0]
	s.ReviewCache.Store(review.ID, review)
	return review, nil
}

func (s *Store) ListReviews(find *model.FindReview) ([]*model.Review, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.AuthorID; v != nil {
		where, args = append(where, "author_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            uuid,
            book_id,
            author_id,
            rating,
            text,
            created_ts,
            updated_ts
        FROM review
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(
			&review.ID,
			&review.UUID,
			&review.BookID,
			&review.AuthorID,
			&review.Rating,
			&review.Text,
			&review.CreatedTs,
			&review.UpdatedTs,
		); err != nil {
			log.Error("Failed to scan review", zap.Error(err))
			return nil, err
		}
		list = append(list, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateReview(create *model.Review) (*model.Review, error) {
	// The schema carries UNIQUE(book_id, author_id); the pre-check turns
	// the constraint violation into a readable error.
	existing, err := s.GetReview(&model.FindReview{BookID: &create.BookID, AuthorID: &create.AuthorID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrReviewExists
	}

	if create.UUID == "" {
		create.UUID = util.GenUUID()
	}

	fields := []string{"`uuid`", "`book_id`", "`author_id`", "`rating`", "`text`"}
	placeholder := []string{"?", "?", "?", "?", "?"}
	args := []any{create.UUID, create.BookID, create.AuthorID, create.Rating, create.Text}
	stmt := "INSERT INTO review (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, created_ts, updated_ts"

	log.Fallback("Debug", fmt.Sprintf("CreateReview\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		log.Error("Failed to create review", zap.Error(err))
		return nil, err
	}

	s.ReviewCache.Store(create.ID, create)
	return create, nil
}

// UpdateReview only ever touches rating and text.
func (s *Store) UpdateReview(update *model.UpdateReview) (*model.Review, error) {
	stmt := `
        UPDATE review
        SET rating = ?, text = ?, updated_ts = strftime('%s', 'now')
        WHERE id = ?
        RETURNING id, uuid, book_id, author_id, rating, text, created_ts, updated_ts`
	args := []any{update.Rating, update.Text, update.ID}

	log.Fallback("Debug", fmt.Sprintf("UpdateReview\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	var review model.Review
	if err := s.db.QueryRow(stmt, args...).Scan(
		&review.ID,
		&review.UUID,
		&review.BookID,
		&review.AuthorID,
		&review.Rating,
		&review.Text,
		&review.CreatedTs,
		&review.UpdatedTs,
	); err != nil {
		log.Error("Failed to update review", zap.Error(err))
		return nil, err
	}

	s.ReviewCache.Store(review.ID, &review)
	return &review, nil
}

func (s *Store) RemoveReview(id int) error {
	stmt := `DELETE FROM review WHERE id = ?`

	log.Fallback("Debug", fmt.Sprintf("RemoveReview\nstmt: %s\nargs: %d\n", stmt, id))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.ReviewCache.Delete(id)
	return nil
}

package store

import (
	"fmt"
	"strings"

	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/util"
	"go.uber.org/zap"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UUID; v != nil {
		where, args = append(where, "uuid = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "title = ?"), append(args, *v)
	}
	if v := find.Author; v != nil {
		where, args = append(where, "author = ?"), append(args, *v)
	}
	if v := find.Genre; v != nil {
		where, args = append(where, "genre = ?"), append(args, *v)
	}
	if v := find.OwnerID; v != nil {
		where, args = append(where, "owner_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            uuid,
            title,
            author,
            description,
            genre,
            published_year,
            owner_id,
            created_ts,
            updated_ts
        FROM book
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.UUID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Genre,
			&book.PublishedYear,
			&book.OwnerID,
			&book.CreatedTs,
			&book.UpdatedTs,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	if create.UUID == "" {
		create.UUID = util.GenUUID()
	}

	fields := []string{"`uuid`", "`title`", "`author`", "`description`", "`genre`", "`published_year`", "`owner_id`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?", "?"}
	args := []any{create.UUID, create.Title, create.Author, create.Description, create.Genre, create.PublishedYear, create.OwnerID}
	stmt := "INSERT INTO book (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, created_ts, updated_ts"

	log.Fallback("Debug", fmt.Sprintf("CreateBook\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		log.Error("Failed to create book", zap.Error(err))
		return nil, err
	}

	s.BookCache.Store(create.ID, create)
	return create, nil
}

func (s *Store) UpdateBook(update *model.UpdateBook) (*model.Book, error) {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Author; v != nil {
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := update.Genre; v != nil {
		set, args = append(set, "genre = ?"), append(args, *v)
	}
	if v := update.PublishedYear; v != nil {
		set, args = append(set, "published_year = ?"), append(args, *v)
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := `
        UPDATE book SET ` + strings.Join(set, ", ") + `
        WHERE id = ?
        RETURNING id, uuid, title, author, description, genre, published_year, owner_id, created_ts, updated_ts`

	log.Fallback("Debug", fmt.Sprintf("UpdateBook\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	var book model.Book
	if err := s.db.QueryRow(stmt, args...).Scan(
		&book.ID,
		&book.UUID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Genre,
		&book.PublishedYear,
		&book.OwnerID,
		&book.CreatedTs,
		&book.UpdatedTs,
	); err != nil {
		log.Error("Failed to update book", zap.Error(err))
		return nil, err
	}

	s.BookCache.Store(book.ID, &book)
	return &book, nil
}

// RemoveBook deletes a book and all reviews attached to it in one
// transaction.
func (s *Store) RemoveBook(id int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The schema cascades too; the explicit delete keeps the review cache
	// handling in one place.
	if _, err := tx.Exec(`DELETE FROM review WHERE book_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM book WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.BookCache.Delete(id)
	s.ReviewCache.Range(func(key, value any) bool {
		if review, ok := value.(*model.Review); ok && review.BookID == id {
			s.ReviewCache.Delete(key)
		}
		return true
	})
	return nil
}

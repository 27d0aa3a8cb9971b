package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
)

func (s *Store) CreateBlog(ctx context.Context, b *models.Blog) error {
	return createBlog(ctx, s.DB, b)
}

func createBlog(ctx context.Context, db execer, b *models.Blog) error {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO blogs (id, title, author, content, image, is_published, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Content, b.Image, boolInt(b.IsPublished), b.CreatedAt.UnixMilli())
	return err
}

// ListBlogs returns one page of blogs, newest first, and the total count.
func (s *Store) ListBlogs(ctx context.Context, page, limit int) ([]models.Blog, int, error) {
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT id, title, author, content, image, is_published, created_at FROM blogs
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

func (s *Store) GetBlog(ctx context.Context, id string) (models.Blog, error) {
	b, err := scanBlog(s.DB.QueryRowContext(ctx, `SELECT id, title, author, content, image, is_published, created_at FROM blogs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Blog{}, ErrNotFound
	}
	return b, err
}

func (s *Store) UpdateBlog(ctx context.Context, b models.Blog) error {
	return affected(s.DB.ExecContext(ctx, `UPDATE blogs SET title = ?, author = ?, content = ?, image = ?, is_published = ? WHERE id = ?`,
		b.Title, b.Author, b.Content, b.Image, boolInt(b.IsPublished), b.ID))
}

func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	return affected(s.DB.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id))
}

func scanBlog(sc scanner) (models.Blog, error) {
	var (
		b         models.Blog
		published int
		created   int64
	)
	if err := sc.Scan(&b.ID, &b.Title, &b.Author, &b.Content, &b.Image, &published, &created); err != nil {
		return models.Blog{}, err
	}
	b.IsPublished = published != 0
	b.CreatedAt = time.UnixMilli(created).UTC()
	return b, nil
}

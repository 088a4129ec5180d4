package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courseware-backend/internal/domains/course/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const courseColumns = `id, title, description, status, is_deleted, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	var status string
	err := row.Scan(&c.ID, &c.Title, &c.Description, &status, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = model.Status(status)
	return &c, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND is_deleted = FALSE`

	c, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `, title_lower)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Title, c.Description, string(c.Status), c.IsDeleted, c.CreatedAt, c.UpdatedAt, foldTitle(c.Title),
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, status = $4, updated_at = $5, title_lower = $6
		WHERE id = $1 AND is_deleted = FALSE
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Title, c.Description, string(c.Status), c.UpdatedAt, foldTitle(c.Title))
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Search(ctx context.Context, filter Filter) ([]*model.Course, error) {
	if filter.Empty() {
		return []*model.Course{}, nil
	}

	conditions := []string{"is_deleted = FALSE"}
	args := make([]interface{}, 0, 4)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, containsPattern(filter.Query))
		conditions = append(conditions, fmt.Sprintf(`title_lower LIKE $%d ESCAPE '\'`, len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, courseColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*model.Course, 0, filter.Limit)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"courseware-backend/internal/domains/lesson/model"
	"courseware-backend/pkg/database"
)

const (
	pgUniqueViolation = "23505"
	orderIndexName    = "idx_lessons_course_order"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const lessonColumns = `id, course_id, title, sort_order, is_deleted, created_at, updated_at`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var l model.Lesson
	err := row.Scan(&l.ID, &l.CourseID, &l.Title, &l.Order, &l.IsDeleted, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	defer rows.Close()

	lessons := make([]*model.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// isOrderViolation: unique violation trên (course_id, sort_order) của lesson chưa xóa
func isOrderViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == orderIndexName
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1 AND is_deleted = FALSE`

	l, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return l, nil
}

func (r *postgresRepository) FindByCourseAndOrder(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1
		  AND sort_order = $2
		  AND is_deleted = FALSE
		  AND ($3::uuid IS NULL OR id <> $3)
	`

	rows, err := r.pool.Query(ctx, query, courseID, order, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find lessons by order: %w", err)
	}
	return collectLessons(rows)
}

func (r *postgresRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND is_deleted = FALSE
		ORDER BY sort_order ASC
	`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return collectLessons(rows)
}

func (r *postgresRepository) ListByCourses(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*model.Lesson, error) {
	grouped := make(map[uuid.UUID][]*model.Lesson, len(courseIDs))
	if len(courseIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = ANY($1) AND is_deleted = FALSE
		ORDER BY course_id, sort_order ASC
	`

	rows, err := r.pool.Query(ctx, query, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("list lessons by courses: %w", err)
	}
	lessons, err := collectLessons(rows)
	if err != nil {
		return nil, err
	}

	for _, l := range lessons {
		grouped[l.CourseID] = append(grouped[l.CourseID], l)
	}
	return grouped, nil
}

func (r *postgresRepository) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1 AND is_deleted = FALSE`,
		courseID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Create(ctx context.Context, l *model.Lesson) error {
	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.CourseID, l.Title, l.Order, l.IsDeleted, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isOrderViolation(err) {
			return model.ErrOrderConflict
		}
		return fmt.Errorf("insert lesson: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, l *model.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, sort_order = $3, updated_at = $4
		WHERE id = $1 AND is_deleted = FALSE
	`

	_, err := r.pool.Exec(ctx, query, l.ID, l.Title, l.Order, l.UpdatedAt)
	if err != nil {
		if isOrderViolation(err) {
			return model.ErrOrderConflict
		}
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lessons SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SwapOrders: unique index không deferrable nên đi qua một order tạm
// nằm ngoài khoảng order đang dùng trong course.
func (r *postgresRepository) SwapOrders(ctx context.Context, a, b *model.Lesson) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock hai row theo thứ tự id để hai swap đồng thời không deadlock
		var locked int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM (
				SELECT id FROM lessons
				WHERE id = ANY($1) AND is_deleted = FALSE
				ORDER BY id
				FOR UPDATE
			) t`, []uuid.UUID{a.ID, b.ID},
		).Scan(&locked); err != nil {
			return fmt.Errorf("lock lessons: %w", err)
		}
		if locked != 2 {
			return fmt.Errorf("swap lessons: %w", model.ErrLessonNotFound)
		}

		// Tính order tạm ở Go, MIN(sort_order) - 1 trong SQL tràn int4
		var minOrder, maxOrder *int
		if err := tx.QueryRow(ctx,
			`SELECT MIN(sort_order), MAX(sort_order) FROM lessons WHERE course_id = $1 AND is_deleted = FALSE`,
			a.CourseID,
		).Scan(&minOrder, &maxOrder); err != nil {
			return fmt.Errorf("pick temporary order: %w", err)
		}
		temp, err := model.TemporaryOrder(minOrder, maxOrder)
		if err != nil {
			return err
		}

		steps := []struct {
			id        uuid.UUID
			order     int
			updatedAt time.Time
		}{
			{a.ID, temp, a.UpdatedAt},
			{b.ID, b.Order, b.UpdatedAt},
			{a.ID, a.Order, a.UpdatedAt},
		}
		for _, s := range steps {
			if _, err := tx.Exec(ctx,
				`UPDATE lessons SET sort_order = $2, updated_at = $3 WHERE id = $1`,
				s.id, s.order, s.updatedAt,
			); err != nil {
				if isOrderViolation(err) {
					return model.ErrOrderConflict
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrOrderConflict) || errors.Is(err, model.ErrLessonNotFound) || model.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("swap lesson orders: %w", err)
	}
	return nil
}

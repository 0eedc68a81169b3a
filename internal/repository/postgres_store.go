package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workshop-service/internal/domain"
)

const uniqueViolation = "23505"

const workshopColumns = `id, title, description, summary, image_url, category, date, start_time, end_time,
               location, capacity, instructor, instructor_title, instructor_bio, instructor_image_url,
               learning_points, requirements, status`

const registrationColumns = `id, workshop_id, first_name, last_name, email, phone, occupation,
               experience_level, expectations, registered_at`

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the tables in migrations/.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (r *postgresStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	const query = `SELECT id, username, password, is_admin FROM users WHERE id=$1`
	return r.fetchUser(ctx, query, id)
}

func (r *postgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT id, username, password, is_admin FROM users WHERE username=$1 ORDER BY id LIMIT 1`
	return r.fetchUser(ctx, query, username)
}

func (r *postgresStore) fetchUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Password, &user.Admin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresStore) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (username, password, is_admin)
        VALUES ($1, $2, $3)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query, user.Username, user.Password, user.Admin).Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresStore) GetAllWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	const query = `SELECT ` + workshopColumns + ` FROM workshops ORDER BY id`
	return r.listWorkshops(ctx, query)
}

func (r *postgresStore) GetWorkshopByID(ctx context.Context, id int) (*domain.Workshop, error) {
	const query = `SELECT ` + workshopColumns + ` FROM workshops WHERE id=$1`
	workshop, err := scanWorkshop(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return workshop, nil
}

func (r *postgresStore) GetWorkshopsByCategory(ctx context.Context, category domain.Category) ([]domain.Workshop, error) {
	const query = `SELECT ` + workshopColumns + ` FROM workshops WHERE category=$1 ORDER BY id`
	return r.listWorkshops(ctx, query, category)
}

func (r *postgresStore) GetWorkshopsByStatus(ctx context.Context, status domain.WorkshopStatus) ([]domain.Workshop, error) {
	const query = `SELECT ` + workshopColumns + ` FROM workshops WHERE status=$1 ORDER BY id`
	return r.listWorkshops(ctx, query, status)
}

func (r *postgresStore) listWorkshops(ctx context.Context, query string, args ...any) ([]domain.Workshop, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Workshop, 0)
	for rows.Next() {
		workshop, err := scanWorkshop(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *workshop)
	}
	return result, rows.Err()
}

func (r *postgresStore) CreateWorkshop(ctx context.Context, workshop domain.Workshop) (*domain.Workshop, error) {
	const query = `
        INSERT INTO workshops (title, description, summary, image_url, category, date, start_time, end_time,
            location, capacity, instructor, instructor_title, instructor_bio, instructor_image_url,
            learning_points, requirements, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query, workshopArgs(workshop)...).Scan(&workshop.ID); err != nil {
		return nil, err
	}
	return &workshop, nil
}

// UpdateWorkshop merges the patch under a row lock so concurrent partial
// updates do not overwrite each other's fields.
func (r *postgresStore) UpdateWorkshop(ctx context.Context, id int, patch domain.WorkshopPatch) (*domain.Workshop, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const selectQuery = `SELECT ` + workshopColumns + ` FROM workshops WHERE id=$1 FOR UPDATE`
	workshop, err := scanWorkshop(tx.QueryRow(ctx, selectQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	patch.Apply(workshop)

	const updateQuery = `
        UPDATE workshops SET title=$1, description=$2, summary=$3, image_url=$4, category=$5, date=$6,
            start_time=$7, end_time=$8, location=$9, capacity=$10, instructor=$11, instructor_title=$12,
            instructor_bio=$13, instructor_image_url=$14, learning_points=$15, requirements=$16, status=$17
        WHERE id=$18`
	args := append(workshopArgs(*workshop), id)
	if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return workshop, nil
}

func (r *postgresStore) DeleteWorkshop(ctx context.Context, id int) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM workshops WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresStore) GetRegistrationsByWorkshopID(ctx context.Context, workshopID int) ([]domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM registrations WHERE workshop_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Registration, 0)
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.WorkshopID,
			&reg.FirstName,
			&reg.LastName,
			&reg.Email,
			&reg.Phone,
			&reg.Occupation,
			&reg.ExperienceLevel,
			&reg.Expectations,
			&reg.RegisteredAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}

func (r *postgresStore) CreateRegistration(ctx context.Context, reg domain.Registration) (*domain.Registration, error) {
	const query = `
        INSERT INTO registrations (workshop_id, first_name, last_name, email, phone, occupation, experience_level, expectations)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, registered_at`
	if err := r.pool.QueryRow(ctx, query,
		reg.WorkshopID,
		reg.FirstName,
		reg.LastName,
		reg.Email,
		reg.Phone,
		reg.Occupation,
		reg.ExperienceLevel,
		reg.Expectations,
	).Scan(&reg.ID, &reg.RegisteredAt); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *postgresStore) GetRegistrationCount(ctx context.Context, workshopID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE workshop_id=$1`, workshopID).Scan(&count)
	return count, err
}

func workshopArgs(w domain.Workshop) []any {
	return []any{
		w.Title,
		w.Description,
		w.Summary,
		w.ImageURL,
		w.Category,
		w.Date,
		w.StartTime,
		w.EndTime,
		w.Location,
		w.Capacity,
		w.Instructor,
		w.InstructorTitle,
		w.InstructorBio,
		w.InstructorImageURL,
		w.LearningPoints,
		w.Requirements,
		w.Status,
	}
}

func scanWorkshop(row pgx.Row) (*domain.Workshop, error) {
	var w domain.Workshop
	if err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Description,
		&w.Summary,
		&w.ImageURL,
		&w.Category,
		&w.Date,
		&w.StartTime,
		&w.EndTime,
		&w.Location,
		&w.Capacity,
		&w.Instructor,
		&w.InstructorTitle,
		&w.InstructorBio,
		&w.InstructorImageURL,
		&w.LearningPoints,
		&w.Requirements,
		&w.Status,
	); err != nil {
		return nil, err
	}
	if w.LearningPoints == nil {
		w.LearningPoints = []string{}
	}
	if w.Requirements == nil {
		w.Requirements = []string{}
	}
	return &w, nil
}

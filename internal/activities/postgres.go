package activities

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL. Membership uniqueness is
// the composite primary key on (activity_id, email).
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed activity store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the activity tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS activities (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        description TEXT NOT NULL,
        schedule TEXT NOT NULL,
        max_participants INTEGER NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("ensure activities schema: %w", err)
	}
	_, err = s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS activity_participants (
        activity_id UUID NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
        email TEXT NOT NULL,
        PRIMARY KEY (activity_id, email)
    )`)
	if err != nil {
		return fmt.Errorf("ensure participants schema: %w", err)
	}
	return nil
}

// List returns all activities sorted by name with participants sorted by email.
func (s *PostgresStore) List(ctx context.Context) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, description, schedule, max_participants
        FROM activities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Activity
	index := make(map[string]int)
	for rows.Next() {
		var (
			id       uuid.UUID
			activity Activity
		)
		if err := rows.Scan(&id, &activity.Name, &activity.Description, &activity.Schedule, &activity.MaxParticipants); err != nil {
			return nil, err
		}
		activity.ID = id.String()
		activity.Participants = []string{}
		index[activity.ID] = len(result)
		result = append(result, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := s.db.Query(ctx, `SELECT activity_id, email
        FROM activity_participants ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer members.Close()

	for members.Next() {
		var (
			activityID uuid.UUID
			email      string
		)
		if err := members.Scan(&activityID, &email); err != nil {
			return nil, err
		}
		if i, ok := index[activityID.String()]; ok {
			result[i].Participants = append(result[i].Participants, email)
		}
	}
	if err := members.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Signup inserts the membership pair. The insert is the atomic duplicate
// check: a unique violation maps to ErrAlreadyEnrolled.
func (s *PostgresStore) Signup(ctx context.Context, activityName, email string) error {
	activityID, err := s.findActivityID(ctx, activityName)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `INSERT INTO activity_participants (activity_id, email)
        VALUES ($1, $2)`, activityID, email)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

// Unregister deletes the membership pair; exactly one row must be affected.
func (s *PostgresStore) Unregister(ctx context.Context, activityName, email string) error {
	activityID, err := s.findActivityID(ctx, activityName)
	if err != nil {
		return err
	}

	cmd, err := s.db.Exec(ctx, `DELETE FROM activity_participants
        WHERE activity_id = $1 AND email = $2`, activityID, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// SeedIfEmpty loads the seed activities only when no activities exist. The
// count check and inserts share one transaction so a concurrent seeder cannot
// double-load.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, seed []Activity) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM activities`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, activity := range seed {
		activityID := uuid.New()
		_, err := tx.Exec(ctx, `INSERT INTO activities (id, name, description, schedule, max_participants)
            VALUES ($1, $2, $3, $4, $5)`, activityID, activity.Name, activity.Description, activity.Schedule, activity.MaxParticipants)
		if err != nil {
			return fmt.Errorf("seed activity %s: %w", activity.Name, err)
		}
		for _, email := range activity.Participants {
			_, err := tx.Exec(ctx, `INSERT INTO activity_participants (activity_id, email)
                VALUES ($1, $2)`, activityID, email)
			if err != nil {
				return fmt.Errorf("seed participant %s: %w", email, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) findActivityID(ctx context.Context, activityName string) (uuid.UUID, error) {
	var activityID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM activities WHERE name = $1`, activityName).Scan(&activityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.UUID{}, ErrNotFound
		}
		return uuid.UUID{}, err
	}
	return activityID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

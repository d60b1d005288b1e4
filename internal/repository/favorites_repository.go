package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoritesRepository хранилище избранных менторов.
// Это единственное «предпочтение» пользователя, которое бот держит у себя:
// просто список идентификаторов менторов платформы.
type FavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewFavoritesRepository(pool *pgxpool.Pool) *FavoritesRepository {
	return &FavoritesRepository{pool: pool}
}

// List возвращает идентификаторы избранных менторов пользователя
func (r *FavoritesRepository) List(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT mentor_id
		FROM favorite_mentors
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var mentorIDs []int64
	for rows.Next() {
		var mentorID int64
		if err := rows.Scan(&mentorID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		mentorIDs = append(mentorIDs, mentorID)
	}

	return mentorIDs, nil
}

// Add добавляет ментора в избранное (повторное добавление — no-op)
func (r *FavoritesRepository) Add(ctx context.Context, userID, mentorID int64) error {
	query := `
		INSERT INTO favorite_mentors (user_id, mentor_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, mentor_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, userID, mentorID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

// Remove убирает ментора из избранного
func (r *FavoritesRepository) Remove(ctx context.Context, userID, mentorID int64) error {
	query := `
		DELETE FROM favorite_mentors
		WHERE user_id = $1 AND mentor_id = $2
	`

	_, err := r.pool.Exec(ctx, query, userID, mentorID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	return nil
}

// Contains проверяет, в избранном ли ментор
func (r *FavoritesRepository) Contains(ctx context.Context, userID, mentorID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM favorite_mentors
			WHERE user_id = $1 AND mentor_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, mentorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

// AllFavoritedMentorIDs возвращает менторов, которые есть хоть у кого-то
// в избранном (для фонового прогрева кэша доступности)
func (r *FavoritesRepository) AllFavoritedMentorIDs(ctx context.Context) ([]int64, error) {
	query := `
		SELECT DISTINCT mentor_id
		FROM favorite_mentors
		ORDER BY mentor_id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list favorited mentors: %w", err)
	}
	defer rows.Close()

	var mentorIDs []int64
	for rows.Next() {
		var mentorID int64
		if err := rows.Scan(&mentorID); err != nil {
			return nil, fmt.Errorf("scan favorited mentor: %w", err)
		}
		mentorIDs = append(mentorIDs, mentorID)
	}

	return mentorIDs, nil
}

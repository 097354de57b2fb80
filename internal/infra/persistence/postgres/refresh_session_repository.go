package postgres

import (
	"context"
	"time"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshSessionRepository keeps one row per user, enforced by the unique user_id index.
type refreshSessionRepository struct {
	db *gorm.DB
}

// NewRefreshSessionRepository is the constructor for the PostgreSQL session store.
func NewRefreshSessionRepository(db *gorm.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

// Replace upserts on user_id so concurrent logins of one user serialize on the row lock
// and the last writer's session is the one that survives.
func (repo *refreshSessionRepository) Replace(ctx context.Context, session *entity.RefreshSession) error {
	prepareSession(session)
	sessionM := fromRefreshSessionDomain(session)

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "token_hash", "expires_at", "created_at"}),
	}).Create(sessionM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to replace refresh session")
	}

	return nil
}

// Rotate is a compare-and-swap on token_hash: only one of two concurrent rotations
// of the same token matches the WHERE clause.
func (repo *refreshSessionRepository) Rotate(ctx context.Context, oldTokenHash string, next *entity.RefreshSession) error {
	prepareSession(next)

	result := repo.db.WithContext(ctx).
		Model(&model.RefreshSessionModel{}).
		Where("token_hash = ? AND user_id = ?", oldTokenHash, next.UserID).
		Updates(map[string]any{
			"id":         next.ID,
			"token_hash": next.TokenHash,
			"expires_at": next.ExpiresAt,
			"created_at": next.CreatedAt,
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to rotate refresh session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshSessionNotFound
	}

	return nil
}

func (repo *refreshSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	var sessionM model.RefreshSessionModel
	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find refresh session")
	}

	return toRefreshSessionDomain(&sessionM), nil
}

func (repo *refreshSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&model.RefreshSessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete refresh session")
	}

	return nil
}

func (repo *refreshSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshSessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete refresh session")
	}

	return nil
}

func (repo *refreshSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.RefreshSessionModel{})
	if err := result.Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to delete expired refresh sessions")
	}

	return result.RowsAffected, nil
}

func prepareSession(session *entity.RefreshSession) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
}

func toRefreshSessionDomain(data *model.RefreshSessionModel) *entity.RefreshSession {
	return &entity.RefreshSession{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromRefreshSessionDomain(data *entity.RefreshSession) *model.RefreshSessionModel {
	return &model.RefreshSessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

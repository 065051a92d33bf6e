package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

// GetByBoardID returns the board's lists in position order. Creation time
// breaks ties so a scope with colliding positions still renders stably.
func (r *ListRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position, created_at").
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) Update(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete removes the list; its cards go with it via the FK cascade.
func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.List{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

func (r *ListRepository) GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.List{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("board_id = ?", boardID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

// Reorder rewrites the positions of a board's lists to the 1-based index each
// id holds in ordered. The whole batch runs in one transaction: either every
// row gets its new position or none does. The supplied sequence must be
// exactly the board's current membership, otherwise ErrSequenceMismatch.
func (r *ListRepository) Reorder(ctx context.Context, boardID uuid.UUID, ordered []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []uuid.UUID
		if err := tx.Model(&model.List{}).
			Where("board_id = ?", boardID).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if !sameIDSet(current, ordered) {
			return ErrSequenceMismatch
		}

		for i, id := range ordered {
			// The board_id filter guards against cross-scope id collisions.
			if err := tx.Model(&model.List{}).
				Where("id = ? AND board_id = ?", id, boardID).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

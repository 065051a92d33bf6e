package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetByListID returns the list's cards in position order, creation time as
// tie-break.
func (r *CardRepository) GetByListID(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position, created_at").
		Find(&cards).Error
	return cards, err
}

// GetByListIDs fetches the cards of several lists in one query, for the
// nested board read. Ordering matches GetByListID.
func (r *CardRepository) GetByListIDs(ctx context.Context, listIDs []uuid.UUID) ([]model.Card, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("list_id IN ?", listIDs).
		Order("position, created_at").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Save(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) GetMaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("list_id = ?", listID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

// Reorder rewrites the positions of a list's cards to the 1-based index each
// id holds in ordered, inside a single transaction. A cross-list move never
// goes through here directly: the card's list_id is reassigned first, then
// both affected scopes are reordered independently.
func (r *CardRepository) Reorder(ctx context.Context, listID uuid.UUID, ordered []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []uuid.UUID
		if err := tx.Model(&model.Card{}).
			Where("list_id = ?", listID).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if !sameIDSet(current, ordered) {
			return ErrSequenceMismatch
		}

		for i, id := range ordered {
			// The list_id filter guards against cross-scope id collisions.
			// UpdateColumn skips the automatic updated_at bump: the reorder
			// path mutates positions only.
			if err := tx.Model(&model.Card{}).
				Where("id = ? AND list_id = ?", id, listID).
				UpdateColumn("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

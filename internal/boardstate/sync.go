package boardstate

import (
	"context"
	"errors"
	"log"

	"taskboard/internal/client"

	"github.com/google/uuid"
)

// API is the slice of the REST client the reconciliation path needs.
type API interface {
	BoardLists(ctx context.Context, boardID uuid.UUID) ([]client.List, error)
	ReorderLists(ctx context.Context, boardID uuid.UUID, ordered []uuid.UUID) error
	ReorderCards(ctx context.Context, listID uuid.UUID, ordered []uuid.UUID) error
	UpdateCard(ctx context.Context, cardID uuid.UUID, update client.CardUpdate) (*client.Card, error)
}

// Syncer pushes committed plans to the server. Failures are logged and
// surfaced but never roll back the optimistic state: recovery is an explicit
// Reload.
type Syncer struct {
	api    API
	logger *log.Logger
}

func NewSyncer(api API, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{api: api, logger: logger}
}

// Apply issues the plan's reconciling calls in order. For a cross-list move
// the card's list_id is reassigned before the destination reorder, otherwise
// the destination scope would not yet contain the card. Each step is its own
// transaction boundary; a failed step is logged and the remaining steps still
// run (the server rejects the ones the failure invalidated).
func (s *Syncer) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil {
		return nil
	}

	if plan.ListOrder != nil {
		if err := s.api.ReorderLists(ctx, plan.BoardID, plan.ListOrder); err != nil {
			s.logger.Printf("⚠️  list reorder failed for board %s: %v", plan.BoardID, err)
			return err
		}
		return nil
	}

	var errs []error

	if plan.ListChanged {
		if err := s.api.ReorderCards(ctx, plan.SourceListID, plan.SourceOrder); err != nil {
			s.logger.Printf("⚠️  source reorder failed for list %s: %v", plan.SourceListID, err)
			errs = append(errs, err)
		}

		destID := plan.DestListID
		if _, err := s.api.UpdateCard(ctx, plan.CardID, client.CardUpdate{ListID: &destID}); err != nil {
			s.logger.Printf("⚠️  card move failed for card %s: %v", plan.CardID, err)
			errs = append(errs, err)
		}
	}

	if err := s.api.ReorderCards(ctx, plan.DestListID, plan.DestOrder); err != nil {
		s.logger.Printf("⚠️  destination reorder failed for list %s: %v", plan.DestListID, err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Reload fetches the authoritative ordered state, discarding local optimism.
func (s *Syncer) Reload(ctx context.Context, boardID uuid.UUID) ([]client.List, error) {
	return s.api.BoardLists(ctx, boardID)
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCardRepository_Reorder_ScopedWrites(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()

	// Every write filters on list_id, so rows in other scopes can never be
	// touched even if an id collided.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "cards" WHERE list_id = \$1`).
		WithArgs(listID).
		WillReturnRows(pluckRows(c1, c2, c3))
	mock.ExpectExec(`UPDATE "cards" SET "position"=\$1 WHERE id = \$2 AND list_id = \$3`).
		WithArgs(1, c3, listID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cards" SET "position"=\$1 WHERE id = \$2 AND list_id = \$3`).
		WithArgs(2, c1, listID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cards" SET "position"=\$1 WHERE id = \$2 AND list_id = \$3`).
		WithArgs(3, c2, listID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := cardRepo.Reorder(context.Background(), listID, []uuid.UUID{c3, c1, c2})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Reorder_ExtraIDRejected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()
	c1 := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "cards" WHERE list_id = \$1`).
		WithArgs(listID).
		WillReturnRows(pluckRows(c1))
	mock.ExpectRollback()

	err := cardRepo.Reorder(context.Background(), listID, []uuid.UUID{c1, uuid.New()})

	assert.ErrorIs(t, err, repository.ErrSequenceMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Reorder_EmptyScope(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()

	// A drained source list reorders to the empty sequence without writes.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "cards" WHERE list_id = \$1`).
		WithArgs(listID).
		WillReturnRows(pluckRows())
	mock.ExpectCommit()

	err := cardRepo.Reorder(context.Background(), listID, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetByListIDs_Ordered(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listA, listB := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE list_id IN \(\$1,\$2\) ORDER BY position, created_at`).
		WithArgs(listA, listB).
		WillReturnRows(sqlmock.NewRows([]string{"id", "list_id", "title", "description", "position", "created_at", "updated_at"}).
			AddRow(c1.String(), listA.String(), "write spec", "", 1, now, now).
			AddRow(c2.String(), listB.String(), "review", "", 1, now, now))

	cards, err := cardRepo.GetByListIDs(context.Background(), []uuid.UUID{listA, listB})

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, listA, cards[0].ListID)
	assert.Equal(t, listB, cards[1].ListID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetByListIDs_Empty(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	cards, err := cardRepo.GetByListIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, cards)
}

func TestCardRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	cardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cards" WHERE id = \$1`).
		WithArgs(cardID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := cardRepo.Delete(context.Background(), cardID)

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetMaxPosition_EmptyList(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) as max FROM "cards" WHERE list_id = \$1`).
		WithArgs(listID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))

	max, err := cardRepo.GetMaxPosition(context.Background(), listID)

	assert.NoError(t, err)
	assert.Equal(t, 0, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func jsonBody(t *testing.T, body any) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func setupCardRouter(gormDB *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cardRepo := repository.NewCardRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	h := handler.NewCardHandler(cardRepo, listRepo, boardRepo)

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})
	r.POST("/lists/:id/cards/reorder", h.Reorder)
	r.PATCH("/cards/:id", h.Update)
	return r
}

func expectListOwned(mock sqlmock.Sqlmock, listID, boardID, ownerID uuid.UUID) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "lists" WHERE id = \$1`).
		WithArgs(listID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "title", "position", "created_at"}).
			AddRow(listID.String(), boardID.String(), "Todo", 1, now))
	expectBoardOwned(mock, boardID, ownerID)
}

func expectCard(mock sqlmock.Sqlmock, cardID, listID uuid.UUID) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = \$1`).
		WithArgs(cardID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "list_id", "title", "description", "position", "created_at", "updated_at"}).
			AddRow(cardID.String(), listID.String(), "write docs", "", 1, now, now))
}

func TestCardHandler_Reorder_SequenceMismatchIs422(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID, boardID, listID := uuid.New(), uuid.New(), uuid.New()
	member := uuid.New()

	expectListOwned(mock, listID, boardID, userID)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "cards" WHERE list_id = \$1`).
		WithArgs(listID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(member.String()))
	mock.ExpectRollback()

	router := setupCardRouter(gormDB, userID)

	resp := postJSON(t, router, "/lists/"+listID.String()+"/cards/reorder", gin.H{
		"ordered": []string{uuid.New().String()},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "do not match")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardHandler_Reorder_ForeignListIs404(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	listID, boardID := uuid.New(), uuid.New()
	// the list's board belongs to someone else
	expectListOwned(mock, listID, boardID, uuid.New())

	router := setupCardRouter(gormDB, uuid.New())

	resp := postJSON(t, router, "/lists/"+listID.String()+"/cards/reorder", gin.H{
		"ordered": []string{uuid.New().String()},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "List not found")
}

func TestCardHandler_Update_MoveValidatesDestination(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID, boardID := uuid.New(), uuid.New()
	cardID, srcList, destList := uuid.New(), uuid.New(), uuid.New()

	expectCard(mock, cardID, srcList)
	expectListOwned(mock, srcList, boardID, userID)
	// destination list does not exist
	mock.ExpectQuery(`SELECT \* FROM "lists" WHERE id = \$1`).
		WithArgs(destList, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	router := setupCardRouter(gormDB, userID)

	req, _ := http.NewRequest("PATCH", "/cards/"+cardID.String(), jsonBody(t, gin.H{
		"list_id": destList.String(),
	}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "List not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardHandler_Update_NoFields(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID, boardID := uuid.New(), uuid.New()
	cardID, listID := uuid.New(), uuid.New()

	expectCard(mock, cardID, listID)
	expectListOwned(mock, listID, boardID, userID)

	router := setupCardRouter(gormDB, userID)

	req, _ := http.NewRequest("PATCH", "/cards/"+cardID.String(), jsonBody(t, gin.H{}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No fields to update")
}

func TestCardHandler_Update_Title(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID, boardID := uuid.New(), uuid.New()
	cardID, listID := uuid.New(), uuid.New()

	expectCard(mock, cardID, listID)
	expectListOwned(mock, listID, boardID, userID)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := setupCardRouter(gormDB, userID)

	req, _ := http.NewRequest("PATCH", "/cards/"+cardID.String(), jsonBody(t, gin.H{
		"title": "write better docs",
	}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var card handler.CardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &card))
	assert.Equal(t, "write better docs", card.Title)
	assert.Equal(t, listID.String(), card.ListID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

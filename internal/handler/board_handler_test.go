package handler_test

import (
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

func setupBoardRouter(gormDB *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handler.NewBoardHandler(repository.NewBoardRepository(gormDB))

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})
	r.GET("/boards", h.GetAll)
	r.GET("/boards/:id", h.GetByID)
	r.DELETE("/boards/:id", h.Delete)
	return r
}

func TestBoardHandler_GetAll(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID := uuid.New()
	b1, b2 := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at", "updated_at"}).
			AddRow(b1.String(), "Sprint", "", userID.String(), now, now).
			AddRow(b2.String(), "Backlog", "", userID.String(), now, now))

	router := setupBoardRouter(gormDB, userID)

	req, _ := http.NewRequest("GET", "/boards", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var boards []handler.BoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &boards))
	require.Len(t, boards, 2)
	assert.Equal(t, "Sprint", boards[0].Title)
	assert.Equal(t, userID.String(), boards[0].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_GetByID_ForeignOwnerIs404(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	boardID := uuid.New()
	expectBoardOwned(mock, boardID, uuid.New())

	router := setupBoardRouter(gormDB, uuid.New())

	req, _ := http.NewRequest("GET", "/boards/"+boardID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board not found")
}

func TestBoardHandler_Delete(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	userID, boardID := uuid.New(), uuid.New()

	expectBoardOwned(mock, boardID, userID)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards" WHERE id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := setupBoardRouter(gormDB, userID)

	req, _ := http.NewRequest("DELETE", "/boards/"+boardID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board deleted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_GetByID_BadUUID(t *testing.T) {
	gormDB, _ := setupMockDB(t)

	router := setupBoardRouter(gormDB, uuid.New())

	req, _ := http.NewRequest("GET", "/boards/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListHandler struct {
	listRepo  *repository.ListRepository
	cardRepo  *repository.CardRepository
	boardRepo *repository.BoardRepository
}

func NewListHandler(listRepo *repository.ListRepository, cardRepo *repository.CardRepository, boardRepo *repository.BoardRepository) *ListHandler {
	return &ListHandler{
		listRepo:  listRepo,
		cardRepo:  cardRepo,
		boardRepo: boardRepo,
	}
}

type CreateListRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

type UpdateListRequest struct {
	Title string `json:"title" binding:"required"`
}

type ReorderRequest struct {
	Ordered []string `json:"ordered" binding:"required"`
}

type ListResponse struct {
	ID        string         `json:"id"`
	BoardID   string         `json:"board_id"`
	Title     string         `json:"title"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	Cards     []CardResponse `json:"cards,omitempty"`
}

func listResponse(l *model.List) ListResponse {
	return ListResponse{
		ID:        l.ID.String(),
		BoardID:   l.BoardID.String(),
		Title:     l.Title,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
	}
}

// ownsBoard checks that the board exists and belongs to the caller.
func (h *ListHandler) ownsBoard(c *gin.Context, boardID, userID uuid.UUID) (bool, error) {
	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		return false, err
	}
	return board != nil && board.OwnerID == userID, nil
}

// GetBoardLists returns a board's lists in position order with each list's
// cards embedded, also in position order
// @Summary  List lists of a board, with nested cards
// @Tags     Lists
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {array} ListResponse
// @Router   /boards/{id}/lists [get]
func (h *ListHandler) GetBoardLists(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	owns, err := h.ownsBoard(c, boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lists"})
		return
	}

	listIDs := make([]uuid.UUID, len(lists))
	for i := range lists {
		listIDs[i] = lists[i].ID
	}

	cards, err := h.cardRepo.GetByListIDs(c.Request.Context(), listIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	// Cards arrive ordered by position then created_at; appending per list
	// keeps that order inside each scope.
	byList := make(map[uuid.UUID][]CardResponse, len(lists))
	for i := range cards {
		byList[cards[i].ListID] = append(byList[cards[i].ListID], cardResponse(&cards[i]))
	}

	response := make([]ListResponse, len(lists))
	for i := range lists {
		resp := listResponse(&lists[i])
		resp.Cards = byList[lists[i].ID]
		if resp.Cards == nil {
			resp.Cards = []CardResponse{}
		}
		response[i] = resp
	}

	c.JSON(http.StatusOK, response)
}

// Create appends a list to a board (position = max + 1) unless an explicit
// position is supplied
// @Summary  Create list
// @Tags     Lists
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Board ID"
// @Param    request body CreateListRequest true "List data"
// @Success  201 {object} ListResponse
// @Router   /boards/{id}/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	owns, err := h.ownsBoard(c, boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	position := req.Position
	if position == 0 {
		maxPosition, err := h.listRepo.GetMaxPosition(c.Request.Context(), boardID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine list position"})
			return
		}
		position = maxPosition + 1
	}

	list := &model.List{
		BoardID:  boardID,
		Title:    req.Title,
		Position: position,
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	c.JSON(http.StatusCreated, listResponse(list))
}

// Update renames a list
// @Summary  Update list
// @Tags     Lists
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "List ID"
// @Param    request body UpdateListRequest true "Fields to update"
// @Success  200 {object} ListResponse
// @Router   /lists/{id} [patch]
func (h *ListHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	owns, err := h.ownsBoard(c, list.BoardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list.Title = req.Title

	if err := h.listRepo.Update(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update list"})
		return
	}

	c.JSON(http.StatusOK, listResponse(list))
}

// Delete removes a list and cascades to its cards
// @Summary  Delete list
// @Tags     Lists
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "List ID"
// @Success  200 {object} map[string]string
// @Router   /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	owns, err := h.ownsBoard(c, list.BoardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	if err := h.listRepo.Delete(c.Request.Context(), listID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

// Reorder rewrites the positions of all lists in a board to match the
// supplied id sequence. The sequence must be the board's complete membership.
// @Summary  Reorder lists
// @Tags     Lists
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Board ID"
// @Param    request body ReorderRequest true "Full ordered list id sequence"
// @Success  200 {object} map[string]string
// @Router   /boards/{id}/lists/reorder [post]
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	owns, err := h.ownsBoard(c, boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ordered, err := parseUUIDs(req.Ordered)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	if err := h.listRepo.Reorder(c.Request.Context(), boardID, ordered); err != nil {
		if errors.Is(err, repository.ErrSequenceMismatch) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Ordered ids do not match the board's lists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lists reordered successfully"})
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

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

type CardHandler struct {
	cardRepo  *repository.CardRepository
	listRepo  *repository.ListRepository
	boardRepo *repository.BoardRepository
}

func NewCardHandler(cardRepo *repository.CardRepository, listRepo *repository.ListRepository, boardRepo *repository.BoardRepository) *CardHandler {
	return &CardHandler{
		cardRepo:  cardRepo,
		listRepo:  listRepo,
		boardRepo: boardRepo,
	}
}

type CreateCardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// UpdateCardRequest carries partial updates; nil fields stay untouched.
// ListID reassigns the card to another list (the cross-list move step between
// the two reorder calls).
type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ListID      *string `json:"list_id"`
}

type CardResponse struct {
	ID          string    `json:"id"`
	ListID      string    `json:"list_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func cardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:          card.ID.String(),
		ListID:      card.ListID.String(),
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

// ownsList resolves the list and checks the caller owns its board. Returns
// nil when the list does not exist or is not owned.
func (h *CardHandler) ownsList(c *gin.Context, listID, userID uuid.UUID) (*model.List, error) {
	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), list.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.OwnerID != userID {
		return nil, nil
	}
	return list, nil
}

// Create appends a card to a list (position = max + 1) unless an explicit
// position is supplied
// @Summary  Create card
// @Tags     Cards
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "List ID"
// @Param    request body CreateCardRequest true "Card data"
// @Success  201 {object} CardResponse
// @Router   /lists/{id}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.ownsList(c, listID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check list access"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	position := req.Position
	if position == 0 {
		maxPosition, err := h.cardRepo.GetMaxPosition(c.Request.Context(), listID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine card position"})
			return
		}
		position = maxPosition + 1
	}

	card := &model.Card{
		ListID:      listID,
		Title:       req.Title,
		Description: req.Description,
		Position:    position,
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, cardResponse(card))
}

// Update edits a card's title or description, or reassigns it to another
// list. A list_id change is a single-row update: the surrounding reorder
// calls keep both affected scopes dense.
// @Summary  Update card
// @Tags     Cards
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Card ID"
// @Param    request body UpdateCardRequest true "Fields to update"
// @Success  200 {object} CardResponse
// @Router   /cards/{id} [patch]
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	list, err := h.ownsList(c, card.ListID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check list access"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title == nil && req.Description == nil && req.ListID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.ListID != nil {
		destListID, err := uuid.Parse(*req.ListID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
			return
		}

		// The destination must also be transitively owned by the caller.
		destList, err := h.ownsList(c, destListID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check list access"})
			return
		}
		if destList == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}

		card.ListID = destListID
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, cardResponse(card))
}

// Delete removes a card
// @Summary  Delete card
// @Tags     Cards
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Card ID"
// @Success  200 {object} map[string]string
// @Router   /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	list, err := h.ownsList(c, card.ListID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check list access"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), cardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

// Reorder rewrites the positions of all cards in a list to match the
// supplied id sequence. The sequence must be the list's complete membership.
// @Summary  Reorder cards
// @Tags     Cards
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "List ID"
// @Param    request body ReorderRequest true "Full ordered card id sequence"
// @Success  200 {object} map[string]string
// @Router   /lists/{id}/cards/reorder [post]
func (h *CardHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.ownsList(c, listID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check list access"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ordered, err := parseUUIDs(req.Ordered)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if err := h.cardRepo.Reorder(c.Request.Context(), listID, ordered); err != nil {
		if errors.Is(err, repository.ErrSequenceMismatch) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Ordered ids do not match the list's cards"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder cards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cards reordered successfully"})
}

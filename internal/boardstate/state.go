// Package boardstate keeps the client's optimistic mirror of a board's
// ordered lists and cards. Transitions are pure functions from (state, drop
// event) to (next state, reconciling plan); the network side effects live in
// Syncer, layered on top.
package boardstate

import (
	"errors"
	"fmt"

	"taskboard/internal/client"
	"taskboard/internal/dnd"

	"github.com/google/uuid"
)

var (
	ErrUnknownNode = errors.New("boardstate: node not present in state")
	ErrBadDrop     = errors.New("boardstate: unsupported drop combination")
)

// Plan is the minimal set of reconciling calls for one committed drop.
// Exactly one of ListOrder / the card fields is populated.
type Plan struct {
	BoardID uuid.UUID

	// List drag: the board's full new list id sequence.
	ListOrder []uuid.UUID

	// Card drag.
	CardID       uuid.UUID
	SourceListID uuid.UUID
	// SourceOrder is the source list's remaining sequence; only set when the
	// card left its list.
	SourceOrder []uuid.UUID
	DestListID  uuid.UUID
	// DestOrder is the destination list's full new sequence (the source's
	// own, for a same-list reorder).
	DestOrder   []uuid.UUID
	ListChanged bool
}

// CloneLists deep-copies the state so optimistic edits never alias a
// snapshot handed to a renderer.
func CloneLists(lists []client.List) []client.List {
	out := make([]client.List, len(lists))
	for i, l := range lists {
		out[i] = l
		out[i].Cards = append([]client.Card(nil), l.Cards...)
	}
	return out
}

func listOrder(lists []client.List) []uuid.UUID {
	ids := make([]uuid.UUID, len(lists))
	for i := range lists {
		ids[i] = lists[i].ID
	}
	return ids
}

func cardOrder(cards []client.Card) []uuid.UUID {
	ids := make([]uuid.UUID, len(cards))
	for i := range cards {
		ids[i] = cards[i].ID
	}
	return ids
}

func findList(lists []client.List, id uuid.UUID) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}

func findCard(lists []client.List, id uuid.UUID) (listIdx, cardIdx int) {
	for i := range lists {
		for j := range lists[i].Cards {
			if lists[i].Cards[j].ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

// MoveList moves the list at index from to index to, returning the new state
// and the board's full id sequence.
func MoveList(lists []client.List, from, to int) ([]client.List, []uuid.UUID) {
	next := CloneLists(lists)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]client.List{moved}, next[to:]...)...)
	return next, listOrder(next)
}

// ApplyDrop interprets a completed drag (active dropped over a target),
// commits it to a fresh copy of the state and returns the reconciling plan.
// A nil plan with nil error means the drop was a no-op (dropped onto itself).
func ApplyDrop(boardID uuid.UUID, lists []client.List, active, over dnd.NodeID) ([]client.List, *Plan, error) {
	switch active.Kind() {
	case dnd.KindList:
		return applyListDrop(boardID, lists, active, over)
	case dnd.KindCard:
		return applyCardDrop(boardID, lists, active, over)
	default:
		return nil, nil, fmt.Errorf("%w: active %q", ErrBadDrop, active)
	}
}

func applyListDrop(boardID uuid.UUID, lists []client.List, active, over dnd.NodeID) ([]client.List, *Plan, error) {
	if over.Kind() != dnd.KindList {
		return nil, nil, fmt.Errorf("%w: list over %q", ErrBadDrop, over)
	}

	activeID, err := active.UUID()
	if err != nil {
		return nil, nil, err
	}
	overID, err := over.UUID()
	if err != nil {
		return nil, nil, err
	}

	from := findList(lists, activeID)
	to := findList(lists, overID)
	if from < 0 || to < 0 {
		return nil, nil, ErrUnknownNode
	}
	if from == to {
		return lists, nil, nil
	}

	next, order := MoveList(lists, from, to)
	return next, &Plan{BoardID: boardID, ListOrder: order}, nil
}

func applyCardDrop(boardID uuid.UUID, lists []client.List, active, over dnd.NodeID) ([]client.List, *Plan, error) {
	cardID, err := active.UUID()
	if err != nil {
		return nil, nil, err
	}

	srcIdx, srcCardIdx := findCard(lists, cardID)
	if srcIdx < 0 {
		return nil, nil, ErrUnknownNode
	}

	var dstIdx, insertAt int
	switch over.Kind() {
	case dnd.KindCard:
		overID, err := over.UUID()
		if err != nil {
			return nil, nil, err
		}
		if overID == cardID {
			return lists, nil, nil
		}
		var overCardIdx int
		dstIdx, overCardIdx = findCard(lists, overID)
		if dstIdx < 0 {
			return nil, nil, ErrUnknownNode
		}
		insertAt = overCardIdx
		// Removing the dragged card first shifts a later target down one.
		if dstIdx == srcIdx && srcCardIdx < overCardIdx {
			insertAt--
		}
	case dnd.KindCardZone, dnd.KindList:
		// Append zone (or the list body itself): card goes to the end.
		overID, err := over.UUID()
		if err != nil {
			return nil, nil, err
		}
		dstIdx = findList(lists, overID)
		if dstIdx < 0 {
			return nil, nil, ErrUnknownNode
		}
		insertAt = len(lists[dstIdx].Cards)
		if dstIdx == srcIdx {
			insertAt--
		}
	default:
		return nil, nil, fmt.Errorf("%w: card over %q", ErrBadDrop, over)
	}

	next := CloneLists(lists)
	card := next[srcIdx].Cards[srcCardIdx]
	next[srcIdx].Cards = append(next[srcIdx].Cards[:srcCardIdx], next[srcIdx].Cards[srcCardIdx+1:]...)

	sameList := dstIdx == srcIdx
	if !sameList {
		card.ListID = next[dstIdx].ID
	}
	dstCards := next[dstIdx].Cards
	next[dstIdx].Cards = append(dstCards[:insertAt], append([]client.Card{card}, dstCards[insertAt:]...)...)

	if sameList && insertAt == srcCardIdx {
		return lists, nil, nil
	}

	plan := &Plan{
		BoardID:      boardID,
		CardID:       cardID,
		SourceListID: next[srcIdx].ID,
		DestListID:   next[dstIdx].ID,
		DestOrder:    cardOrder(next[dstIdx].Cards),
		ListChanged:  !sameList,
	}
	if !sameList {
		plan.SourceOrder = cardOrder(next[srcIdx].Cards)
	}
	return next, plan, nil
}

// Package dnd translates pointer gestures into semantic drag events. It owns
// no persistent state: the boardstate package consumes its events and decides
// what a drop means.
package dnd

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrBadNodeID marks an identifier outside the list-/card-/cards- namespaces.
var ErrBadNodeID = errors.New("dnd: malformed node id")

// Kind classifies a draggable or droppable node.
type Kind int

const (
	KindUnknown Kind = iota
	KindList
	KindCard
	// KindCardZone is a list's card drop area; dropping there appends the
	// card to that list. The zone id carries the list's id.
	KindCardZone
)

// NodeID is the namespaced identifier attached to draggables and droppables:
// "list-<id>", "card-<id>" or "cards-<listId>".
type NodeID string

const (
	listPrefix     = "list-"
	cardPrefix     = "card-"
	cardZonePrefix = "cards-"
)

func ListNode(id uuid.UUID) NodeID     { return NodeID(listPrefix + id.String()) }
func CardNode(id uuid.UUID) NodeID     { return NodeID(cardPrefix + id.String()) }
func CardZoneNode(listID uuid.UUID) NodeID {
	return NodeID(cardZonePrefix + listID.String())
}

func (n NodeID) Kind() Kind {
	s := string(n)
	switch {
	case strings.HasPrefix(s, cardZonePrefix):
		return KindCardZone
	case strings.HasPrefix(s, cardPrefix):
		return KindCard
	case strings.HasPrefix(s, listPrefix):
		return KindList
	default:
		return KindUnknown
	}
}

// UUID extracts the entity id behind the namespace prefix. For a card zone
// this is the owning list's id.
func (n NodeID) UUID() (uuid.UUID, error) {
	s := string(n)
	switch n.Kind() {
	case KindCardZone:
		return uuid.Parse(strings.TrimPrefix(s, cardZonePrefix))
	case KindCard:
		return uuid.Parse(strings.TrimPrefix(s, cardPrefix))
	case KindList:
		return uuid.Parse(strings.TrimPrefix(s, listPrefix))
	default:
		return uuid.Nil, ErrBadNodeID
	}
}

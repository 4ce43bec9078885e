package ability

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
)

// ItemKind distinguishes a spell from an activated/triggered ability on
// the stack. A split second spell is an ordinary SpellItem; SetSplitSecond
// records that one is on the stack.
type ItemKind int

const (
	SpellItem ItemKind = iota
	AbilityItem
)

// StackItem is one spell or ability waiting to resolve.
type StackItem struct {
	ID          uuid.UUID
	Kind        ItemKind
	Ability     *Ability
	SpellName   string
	SpellEffect []Effect
	Controller  int
	Source      uuid.UUID
	Targets     []SelectedTarget
	XValue      int // the X chosen for this cast/activation; 0 if the cost had no {X}
	Countered   bool
	Description string
	Permanent   bool // true for a creature/artifact/enchantment/planeswalker spell, which resolves onto the battlefield rather than into the graveyard
}

// Stack is Magic's last-in-first-out resolution stack, plus the priority
// bookkeeping (rule 117) that governs when it resolves.
type Stack struct {
	items          []*StackItem
	priorityPlayer int
	passed         map[int]bool
	playerCount    int
	splitSecond    bool
	engine         *ExecutionEngine
}

// NewStack creates an empty stack for a game with the given player count.
func NewStack(playerCount int, engine *ExecutionEngine) *Stack {
	return &Stack{
		passed:      make(map[int]bool),
		playerCount: playerCount,
		engine:      engine,
	}
}

// Push adds item to the top of the stack and resets priority to the
// active player (rule 117.3c: after an item is put on the stack, the
// active player receives priority).
func (s *Stack) Push(item *StackItem, activePlayer int) {
	s.items = append(s.items, item)
	logger.LogCard("added to stack: %s (controlled by player %d)", item.Description, item.Controller)
	s.resetPriorityPassing()
	s.priorityPlayer = activePlayer
}

// Pop removes and returns the top item, or nil if the stack is empty.
func (s *Stack) Pop() *StackItem {
	if len(s.items) == 0 {
		return nil
	}
	item := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return item
}

// Peek returns the top item without removing it.
func (s *Stack) Peek() *StackItem {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Size returns the number of items currently on the stack.
func (s *Stack) Size() int { return len(s.items) }

// IsEmpty reports whether the stack has no items.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Items returns a copy of the stack, bottom to top.
func (s *Stack) Items() []*StackItem {
	out := make([]*StackItem, len(s.items))
	copy(out, s.items)
	return out
}

// Counter marks the item with the given ID as countered; it is removed on
// its next resolution attempt instead of resolving.
func (s *Stack) Counter(id uuid.UUID) error {
	for _, item := range s.items {
		if item.ID == id {
			item.Countered = true
			return nil
		}
	}
	return ErrSourceNotOnStack
}

// SetSplitSecond toggles whether split second is currently in effect,
// during which no player may cast spells or activate abilities (rule
// 702.61b) and priority passing proceeds straight to resolution.
func (s *Stack) SetSplitSecond(active bool) { s.splitSecond = active }

// SplitSecondActive reports whether a split second spell is on the stack.
func (s *Stack) SplitSecondActive() bool { return s.splitSecond }

// PassPriority records that player passed priority; returns true once
// every player has passed in succession, meaning the top stack item (or,
// if the stack is empty, the current step/phase) is ready to resolve or
// advance.
func (s *Stack) PassPriority(player int) bool {
	s.passed[player] = true
	logger.LogCard("player %d passes priority", player)
	for p := 0; p < s.playerCount; p++ {
		if !s.passed[p] {
			return false
		}
	}
	s.resetPriorityPassing()
	return true
}

func (s *Stack) resetPriorityPassing() {
	s.passed = make(map[int]bool)
}

// ResolveTop pops the top stack item and resolves it (unless countered),
// returning the resolution outcome. Priority passing is reset afterward
// per rule 117.3b: the active player receives priority again.
func (s *Stack) ResolveTop(activePlayer int) (Resolution, error) {
	item := s.Pop()
	if item == nil {
		return Resolution{}, ErrStackEmpty
	}
	s.resetPriorityPassing()
	s.priorityPlayer = activePlayer

	if item.Countered {
		logger.LogCard("%s was countered and does not resolve", item.Description)
		return Resolution{Resolved: false}, nil
	}
	if item.Ability == nil {
		return Resolution{Resolved: true}, nil
	}
	return s.engine.ResolveAbility(item.Ability, item.Controller, item.Targets)
}

// PriorityPlayer returns whoever currently holds priority.
func (s *Stack) PriorityPlayer() int { return s.priorityPlayer }

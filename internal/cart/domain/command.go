package domain

import "errors"

// ErrInvalidQuantity is returned when AddItem is issued with a quantity
// that is not a positive integer. This is a caller bug, not user input to
// be coerced: the store rejects the mutation outright.
var ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")

// Command is a tagged mutation of the line-item collection. The full set of
// variants is AddItem, RemoveItem, SetQuantity and Clear; Apply matches them
// exhaustively.
type Command interface {
	isCommand()
}

// AddItem merges Quantity units of Item into the slot with the same key,
// or appends a new slot at the end when none exists.
type AddItem struct {
	Item     LineItem
	Quantity int
}

// RemoveItem deletes the slot with the given key. Absent keys are a no-op.
type RemoveItem struct {
	Key ItemKey
}

// SetQuantity replaces a slot's quantity in place. A quantity <= 0 means
// "remove the slot", never "store zero".
type SetQuantity struct {
	Key      ItemKey
	Quantity int
}

// Clear empties the collection.
type Clear struct{}

func (AddItem) isCommand()     {}
func (RemoveItem) isCommand()  {}
func (SetQuantity) isCommand() {}
func (Clear) isCommand()       {}

// Apply is the pure transition function over the line-item collection.
// It never mutates its input; the returned slice is a fresh copy. The
// changed result reports whether the collection actually differs, so
// callers can skip persistence and fan-out on no-op commands (removing an
// absent key, clearing an empty cart).
//
// Invariants it maintains: at most one slot per ItemKey, every slot has
// quantity >= 1, and merging into an existing slot keeps its position.
func Apply(items []LineItem, cmd Command) (next []LineItem, changed bool, err error) {
	switch c := cmd.(type) {
	case AddItem:
		if c.Quantity <= 0 {
			return nil, false, ErrInvalidQuantity
		}
		next = make([]LineItem, len(items))
		copy(next, items)
		key := c.Item.Key()
		for i := range next {
			if next[i].Key() == key {
				next[i].Quantity += c.Quantity
				return next, true, nil
			}
		}
		added := c.Item
		added.Quantity = c.Quantity
		return append(next, added), true, nil

	case RemoveItem:
		next = make([]LineItem, 0, len(items))
		for _, item := range items {
			if item.Key() != c.Key {
				next = append(next, item)
			}
		}
		return next, len(next) != len(items), nil

	case SetQuantity:
		if c.Quantity <= 0 {
			return Apply(items, RemoveItem{Key: c.Key})
		}
		next = make([]LineItem, len(items))
		copy(next, items)
		for i := range next {
			if next[i].Key() == c.Key {
				changed = next[i].Quantity != c.Quantity
				next[i].Quantity = c.Quantity
				break
			}
		}
		return next, changed, nil

	case Clear:
		return nil, len(items) > 0, nil

	default:
		return nil, false, errors.New("cart: unknown command")
	}
}

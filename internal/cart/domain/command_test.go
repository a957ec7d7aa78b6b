package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func tshirt(color, size string) LineItem {
	return LineItem{
		ProductID: "p-100",
		Name:      "Basic Tee",
		UnitPrice: decimal.NewFromInt(10000),
		Color:     color,
		Size:      size,
	}
}

func TestApplyAddMergesSameVariant(t *testing.T) {
	items, _, err := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 2})
	require.NoError(t, err)

	items, _, err = Apply(items, AddItem{Item: tshirt("black", "M"), Quantity: 3})
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
}

func TestApplyAddKeepsVariantsSeparate(t *testing.T) {
	items, _, err := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 1})
	require.NoError(t, err)
	items, _, err = Apply(items, AddItem{Item: tshirt("white", "M"), Quantity: 1})
	require.NoError(t, err)
	items, _, err = Apply(items, AddItem{Item: tshirt("black", "L"), Quantity: 1})
	require.NoError(t, err)

	require.Len(t, items, 3)
}

func TestApplyMergePreservesPosition(t *testing.T) {
	items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 1})
	items, _, _ = Apply(items, AddItem{Item: tshirt("white", "L"), Quantity: 1})

	// Merging into the first slot must not move it to the end.
	items, _, err := Apply(items, AddItem{Item: tshirt("black", "M"), Quantity: 4})
	require.NoError(t, err)

	require.Len(t, items, 2)
	require.Equal(t, "black", items[0].Color)
	require.Equal(t, 5, items[0].Quantity)
	require.Equal(t, "white", items[1].Color)
}

func TestApplyAddRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -10} {
		_, _, err := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: qty})
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestApplySetQuantityReplacesInPlace(t *testing.T) {
	items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 1})
	items, _, _ = Apply(items, AddItem{Item: tshirt("white", "L"), Quantity: 1})

	items, _, err := Apply(items, SetQuantity{Key: tshirt("black", "M").Key(), Quantity: 7})
	require.NoError(t, err)

	require.Equal(t, 7, items[0].Quantity)
	require.Equal(t, "black", items[0].Color)
}

func TestApplySetQuantityZeroOrBelowRemoves(t *testing.T) {
	for _, qty := range []int{0, -5} {
		items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 2})
		items, _, err := Apply(items, SetQuantity{Key: tshirt("black", "M").Key(), Quantity: qty})
		require.NoError(t, err)
		require.Empty(t, items)
	}
}

func TestApplyRemoveAbsentKeyIsNoop(t *testing.T) {
	items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 1})

	items, _, err := Apply(items, RemoveItem{Key: ItemKey{ProductID: "nope"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestApplyClear(t *testing.T) {
	items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 1})
	items, _, _ = Apply(items, AddItem{Item: tshirt("white", "L"), Quantity: 1})

	items, _, err := Apply(items, Clear{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestApplyNeverDuplicatesKeys(t *testing.T) {
	var items []LineItem
	var err error
	variants := []LineItem{
		tshirt("black", "M"), tshirt("white", "M"), tshirt("black", "M"),
		tshirt("black", "L"), tshirt("white", "M"), tshirt("black", "M"),
	}
	for _, v := range variants {
		items, _, err = Apply(items, AddItem{Item: v, Quantity: 1})
		require.NoError(t, err)
	}

	seen := make(map[ItemKey]bool)
	for _, item := range items {
		require.False(t, seen[item.Key()], "duplicate slot for %v", item.Key())
		seen[item.Key()] = true
		require.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items, _, _ := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 2})
	before := items[0].Quantity

	_, _, err := Apply(items, AddItem{Item: tshirt("black", "M"), Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, before, items[0].Quantity)
}

func TestApplyReportsUnchangedOnNoops(t *testing.T) {
	items, changed, err := Apply(nil, AddItem{Item: tshirt("black", "M"), Quantity: 2})
	require.NoError(t, err)
	require.True(t, changed)

	// Removing an absent key leaves the collection as it was.
	_, changed, err = Apply(items, RemoveItem{Key: ItemKey{ProductID: "nope"}})
	require.NoError(t, err)
	require.False(t, changed)

	// So does setting the quantity on an absent key, or to the value the
	// slot already has.
	_, changed, err = Apply(items, SetQuantity{Key: ItemKey{ProductID: "nope"}, Quantity: 3})
	require.NoError(t, err)
	require.False(t, changed)

	_, changed, err = Apply(items, SetQuantity{Key: tshirt("black", "M").Key(), Quantity: 2})
	require.NoError(t, err)
	require.False(t, changed)

	// Clearing an empty cart changes nothing; clearing a non-empty one does.
	_, changed, err = Apply(nil, Clear{})
	require.NoError(t, err)
	require.False(t, changed)

	_, changed, err = Apply(items, Clear{})
	require.NoError(t, err)
	require.True(t, changed)
}

func TestSnapshotSubtotal(t *testing.T) {
	snap := Snapshot{
		{UnitPrice: decimal.NewFromInt(10000), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(2500), Quantity: 4},
	}
	require.True(t, snap.Subtotal().Equal(decimal.NewFromInt(30000)))
}

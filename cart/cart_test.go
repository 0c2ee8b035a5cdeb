package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

type quantities map[int]int

func snapshot(items []Item) quantities {
	return lo.SliceToMap(items, func(it Item) (int, int) { return it.ID, it.Quantity })
}

func TestCartMutations(t *testing.T) {
	tests := []struct {
		name  string
		steps func(c *Cart)
		want  quantities
		total int
	}{
		{
			name:  "add once",
			steps: func(c *Cart) { _, _ = c.Add(1) },
			want:  quantities{1: 1},
			total: 29800,
		},
		{
			name: "repeat add increments",
			steps: func(c *Cart) {
				_, _ = c.Add(2)
				_, _ = c.Add(2)
				_, _ = c.Add(6)
			},
			want:  quantities{2: 2, 6: 1},
			total: 15800*2 + 9800,
		},
		{
			name: "decrement to zero removes",
			steps: func(c *Cart) {
				_, _ = c.Add(3)
				c.UpdateQuantity(3, -1)
			},
			want:  quantities{},
			total: 0,
		},
		{
			name: "increment",
			steps: func(c *Cart) {
				_, _ = c.Add(4)
				c.UpdateQuantity(4, 2)
			},
			want:  quantities{4: 3},
			total: 89800 * 3,
		},
		{
			name: "remove",
			steps: func(c *Cart) {
				_, _ = c.Add(4)
				_, _ = c.Add(5)
				c.Remove(4)
			},
			want:  quantities{5: 1},
			total: 58000,
		},
		{
			name:  "update unknown is ignored",
			steps: func(c *Cart) { c.UpdateQuantity(42, 1) },
			want:  quantities{},
			total: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			tt.steps(c)
			if diff := cmp.Diff(tt.want, snapshot(c.Items())); diff != "" {
				t.Errorf("Items() mismatch (-want +got):\n%s", diff)
			}
			if got := c.Total(); got != tt.total {
				t.Errorf("Total() = %d, want %d", got, tt.total)
			}
		})
	}
}

func TestAddUnknownProduct(t *testing.T) {
	c := New(nil)
	if _, err := c.Add(999); !failure.Is(err, ProductNotFound) {
		t.Fatalf("Add(999) error = %v, want %s", err, ProductNotFound)
	}
	if c.Count() != 0 {
		t.Errorf("Count() = %d, want 0", c.Count())
	}
}

func TestCount(t *testing.T) {
	c := New(nil)
	_, _ = c.Add(1)
	_, _ = c.Add(1)
	_, _ = c.Add(2)
	if got := c.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestCheckout(t *testing.T) {
	c := New(nil)
	if _, err := c.Checkout(); !failure.Is(err, EmptyCart) {
		t.Fatalf("Checkout() on empty cart error = %v, want %s", err, EmptyCart)
	}

	_, _ = c.Add(1)
	_, _ = c.Add(6)
	total, err := c.Checkout()
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if total != 29800+9800 {
		t.Errorf("Checkout() = %d, want %d", total, 29800+9800)
	}
	if len(c.Items()) != 0 {
		t.Errorf("cart not cleared after checkout: %v", c.Items())
	}
}

func TestMirrorCalledOnEveryMutation(t *testing.T) {
	var mirrored []quantities
	c := New(func(items []Item) {
		mirrored = append(mirrored, snapshot(items))
	})

	_, _ = c.Add(1)
	_, _ = c.Add(1)
	c.UpdateQuantity(1, -1)
	_, _ = c.Add(2)
	c.Remove(1)
	_, _ = c.Checkout()

	want := []quantities{
		{1: 1},
		{1: 2},
		{1: 1},
		{1: 1, 2: 1},
		{2: 1},
		{},
	}
	if diff := cmp.Diff(want, mirrored); diff != "" {
		t.Errorf("mirrored snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestItemsIsCopy(t *testing.T) {
	c := New(nil)
	_, _ = c.Add(1)
	items := c.Items()
	items[0].Quantity = 100
	if got := c.Items()[0].Quantity; got != 1 {
		t.Errorf("Quantity = %d after mutating copy, want 1", got)
	}
}

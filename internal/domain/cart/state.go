package cart

import "github.com/example/pocket-shop/internal/domain/product"

// Item is a product held in the cart with a requested quantity.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// NewItem builds a line item with the default quantity of 1.
func NewItem(p product.Product) Item {
	return Item{Product: p, Quantity: 1}
}

// State is the ordered sequence of line items. Order is insertion order.
type State []Item

// Command is a cart state transition.
type Command interface {
	commandName() string
}

type AddToCart struct {
	Product product.Product
}

type RemoveFromCart struct {
	ProductID int
}

type ClearCart struct{}

type UpdateQuantity struct {
	ProductID int
	Quantity  int
}

func (AddToCart) commandName() string      { return "AddToCart" }
func (RemoveFromCart) commandName() string { return "RemoveFromCart" }
func (ClearCart) commandName() string      { return "ClearCart" }
func (UpdateQuantity) commandName() string { return "UpdateQuantity" }

// Apply returns the state that results from cmd. The input is never modified.
//
// Adds always append, so adding the same product twice yields two line items.
// Quantity updates are not range checked here; see ValidateQuantity.
func Apply(state State, cmd Command) State {
	switch c := cmd.(type) {
	case AddToCart:
		next := make(State, len(state), len(state)+1)
		copy(next, state)
		return append(next, NewItem(c.Product))

	case RemoveFromCart:
		next := make(State, 0, len(state))
		for _, item := range state {
			if item.ID != c.ProductID {
				next = append(next, item)
			}
		}
		return next

	case ClearCart:
		return State{}

	case UpdateQuantity:
		i := state.indexOf(c.ProductID)
		if i < 0 {
			return state.clone()
		}
		next := state.clone()
		next[i].Quantity = c.Quantity
		return next
	}
	return state.clone()
}

// Find returns the first line item for the product id.
func (s State) Find(productID int) (Item, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s[i], true
	}
	return Item{}, false
}

func (s State) indexOf(productID int) int {
	for i, item := range s {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	next := make(State, len(s))
	copy(next, s)
	return next
}

package cart

import (
	"errors"
	"fmt"
)

var ErrQuantityOutOfRange = errors.New("invalid quantity")

// QuantityError reports a quantity outside 1..Stock.
type QuantityError struct {
	ProductID int
	Quantity  int
	Stock     int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("Invalid quantity. Please select a quantity between 1 and %d", e.Stock)
}

func (e *QuantityError) Unwrap() error { return ErrQuantityOutOfRange }

// ValidateQuantity accepts q only when 0 < q <= item stock.
func ValidateQuantity(item Item, q int) error {
	if q > 0 && q <= item.Stock {
		return nil
	}
	return &QuantityError{ProductID: item.ID, Quantity: q, Stock: item.Stock}
}

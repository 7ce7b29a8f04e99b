package command

// Cart Commands
type AddToCart struct {
	ProductID int `json:"productId"`
}

type RemoveFromCart struct {
	ProductID int `json:"productId"`
}

type ClearCart struct{}

type UpdateQuantity struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Stepper buttons on the Cart screen
type IncrementQuantity struct {
	ProductID int `json:"productId"`
}

type DecrementQuantity struct {
	ProductID int `json:"productId"`
}

package query

// Re-export read models from readmodel package
import "github.com/example/pocket-shop/internal/readmodel"

type ProductReadModel = readmodel.ProductReadModel
type CartItemReadModel = readmodel.CartItemReadModel
type CartReadModel = readmodel.CartReadModel
type CheckoutReadModel = readmodel.CheckoutReadModel

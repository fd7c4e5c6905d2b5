package domain

// OrderStatus is the fulfilment state shown in the order history
type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// UserProfile represents the signed-in shopper
type UserProfile struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	Addresses    []Address `json:"addresses"`
	OrderHistory []Order   `json:"orderHistory"`
}

// Address is a saved delivery address
type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Order is a past order in the profile
type Order struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Total  float64     `json:"total"`
	Status OrderStatus `json:"status"`
	Items  []CartItem  `json:"items"`
}

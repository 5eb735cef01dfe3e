package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	IsVegan      bool     `json:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree"`
	Allergens    []string `json:"allergens"`
	Rating       float64  `json:"rating"`
}

type CartLine struct {
	ProductID           int      `json:"productId"`
	ProductName         string   `json:"productName"`
	UnitPrice           float64  `json:"unitPrice"`
	Quantity            int      `json:"quantity"`
	LineTotal           float64  `json:"lineTotal"`
	Size                *string  `json:"size,omitempty"`
	SpecialInstructions *string  `json:"specialInstructions,omitempty"`
	GiftMessage         *string  `json:"giftMessage,omitempty"`
	GiftPackaging       *string  `json:"giftPackaging,omitempty"`
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

type CartView struct {
	Lines       []*CartLine `json:"lines"`
	Totals      *Totals     `json:"totals"`
	PromoCode   *string     `json:"promoCode,omitempty"`
	State       string      `json:"state"`
	OrderNumber *string     `json:"orderNumber,omitempty"`
}

type Response struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

type ApplyPromoResponse struct {
	Success      bool    `json:"success"`
	Message      *string `json:"message,omitempty"`
	Code         *string `json:"code,omitempty"`
	Description  *string `json:"description,omitempty"`
	FreeShipping *bool   `json:"freeShipping,omitempty"`
}

type PlaceOrderResponse struct {
	Success     bool    `json:"success"`
	Message     *string `json:"message,omitempty"`
	OrderNumber *string `json:"orderNumber,omitempty"`
	State       string  `json:"state"`
}

type CustomizationInput struct {
	Size                *string `json:"size,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	GiftMessage         *string `json:"giftMessage,omitempty"`
	GiftPackaging       *string `json:"giftPackaging,omitempty"`
}

type AddToCartInput struct {
	ProductID     int                 `json:"productId"`
	Quantity      int                 `json:"quantity"`
	Customization *CustomizationInput `json:"customization,omitempty"`
}

type UpdateCartInput struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type OrderContextInput struct {
	OrderType       string  `json:"orderType"`
	DeliveryOption  *string `json:"deliveryOption,omitempty"`
	DeliveryDate    *string `json:"deliveryDate,omitempty"`
	DeliveryTime    *string `json:"deliveryTime,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
}

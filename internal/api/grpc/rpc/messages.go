package rpc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Empty is used by methods without a meaningful request or response.
type Empty struct{}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Status   int    `json:"status"`
}

type RequestSignupOTPRequest struct {
	Email string `json:"email"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

type VerifyPasswordResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type UpdatePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ListProductsRequest struct {
	Page        int    `json:"page,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Category    string `json:"category,omitempty"`
	// PriceSort is "h2l", "l2h" or empty.
	PriceSort string `json:"priceSort,omitempty"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}

type GetProductRequest struct {
	ProductID string `json:"productId"`
}

// CreateProductRequest carries either raw Image bytes or an ImageURL.
type CreateProductRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Price            decimal.Decimal `json:"price"`
	Description      string          `json:"description,omitempty"`
	Quantity         int             `json:"quantity"`
	Image            []byte          `json:"image,omitempty"`
	ImageContentType string          `json:"imageContentType,omitempty"`
	ImageURL         string          `json:"imageUrl,omitempty"`
}

type ProductDetail struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
}

type UserDetail struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CartItem struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"productId"`
	Quantity      int           `json:"quantity"`
	Status        int           `json:"status"`
	SoftDeletedAt *time.Time    `json:"softDeletedAt,omitempty"`
	PurgeAfter    *time.Time    `json:"purgeAfter,omitempty"`
	UserDetail    UserDetail    `json:"userDetail"`
	ProductDetail ProductDetail `json:"productDetail"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ResolvedCartItem pairs a cart row with the current product. Product is
// nil when it no longer exists.
type ResolvedCartItem struct {
	Item    CartItem    `json:"item"`
	Product *Product    `json:"product,omitempty"`
	User    *UserDetail `json:"user,omitempty"`
}

type AddItemRequest struct {
	ProductID string `json:"productId"`
}

type CartResponse struct {
	Items []ResolvedCartItem `json:"items"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type ListItemsRequest struct {
	IncludeDeleted bool `json:"includeDeleted,omitempty"`
}

type ListItemsResponse struct {
	Items []CartItem `json:"items"`
}

type OrderItem struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
}

type Order struct {
	ID                 string         `json:"id"`
	Kind               string         `json:"kind"`
	ProductID          string         `json:"productId,omitempty"`
	Address            string         `json:"address"`
	MobileNo           string         `json:"mobileNo"`
	User               UserDetail     `json:"user"`
	Items              []OrderItem    `json:"items"`
	TotalQuantity      int            `json:"totalQuantity"`
	CategoryQuantities map[string]int `json:"categoryQuantities"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type BuyNowRequest struct {
	ProductID string `json:"productId"`
	Address   string `json:"address"`
	MobileNo  string `json:"mobileNo"`
}

type PlaceCartOrderRequest struct {
	Address  string `json:"address"`
	MobileNo string `json:"mobileNo"`
}

type CheckoutResponse struct {
	Order    Order    `json:"order"`
	Warnings []string `json:"warnings,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type GetOrderRequest struct {
	OrderID string `json:"orderId"`
}

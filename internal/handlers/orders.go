package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
	Quantity  int      `json:"quantity" binding:"required,gte=1"`
}

type createOrderRequest struct {
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *float64                 `json:"totalAmount" binding:"required,gte=0"`
	ShippingAddress string                   `json:"shippingAddress" binding:"required"`
	Phone           string                   `json:"phone" binding:"required"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required,oneof=credit_card debit_card cash_on_delivery"`
}

type orderSummary struct {
	OrderID     string    `json:"orderId"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// now is swapped in tests to produce deterministic order ids.
var now = time.Now

// newOrderID derives the order id from the creation time. Two orders created
// in the same millisecond collide; the unique index rejects the second.
func newOrderID(t time.Time) string {
	return "ORDER_" + strconv.FormatInt(t.UnixMilli(), 10)
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		s, ok := middleware.CurrentSession(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Please login to place an order")
			return
		}

		userID, err := primitive.ObjectIDFromHex(s.User.ID)
		if err != nil {
			log.Println("[ORDER] [ERROR] session holds invalid user id:", s.User.ID)
			respondWithError(c, http.StatusUnauthorized, route, "Please login to place an order")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		order, err := buildOrderFromRequest(req, now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		order.UserID = userID

		if sum := order.ItemsTotal(); math.Abs(sum-order.TotalAmount) > 0.005 {
			log.Printf("[ORDER] [WARN] %s submitted total %.2f differs from item sum %.2f", order.OrderID, order.TotalAmount, sum)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := orders.Create(ctx, &order); err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to place order")
			return
		}

		log.Printf("[ORDER] [INFO] order %s created for user %s", order.OrderID, userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order": orderSummary{
				OrderID:     order.OrderID,
				TotalAmount: order.TotalAmount,
				Status:      order.Status,
				CreatedAt:   order.CreatedAt,
			},
		})
	}
}

/* =========================
   GET ORDER
========================= */

// GetOrder looks an order up by its order id. There is no ownership check.
func GetOrder(orders OrderStore, products ProductReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:orderId"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := orders.FindByOrderID(ctx, c.Param("orderId"))
		if errors.Is(err, repository.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch order")
			return
		}

		refs, err := products.FindRefs(ctx, order.ProductIDs())
		if err != nil {
			log.Println("[ORDER] [ERROR] product expansion failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch order")
			return
		}

		c.JSON(http.StatusOK, order.Populate(refs))
	}
}

/* =========================
   BUILD ORDER
========================= */

func buildOrderFromRequest(req createOrderRequest, createdAt time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
		if err != nil {
			return models.Order{}, errors.New("invalid productId")
		}
		if item.Quantity < 1 {
			return models.Order{}, errors.New("quantity must be at least 1")
		}

		var price float64
		if item.Price != nil {
			price = *item.Price
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      strings.TrimSpace(item.Name),
			Price:     price,
			Quantity:  item.Quantity,
		})
	}

	var total float64
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	return models.Order{
		OrderID:         newOrderID(createdAt),
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Phone:           strings.TrimSpace(req.Phone),
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusConfirmed,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

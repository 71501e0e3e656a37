package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heladeria-app/storefront/internal/auth"
	"github.com/heladeria-app/storefront/internal/cart"
	"github.com/heladeria-app/storefront/internal/catalog"
	"github.com/heladeria-app/storefront/internal/order"
)

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		items := svc.Search(c.Request.Context(), q)
		c.JSON(http.StatusOK, gin.H{"q": q, "items": items})
	}
}

func refreshCatalogHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := svc.Refresh(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func registerHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		u, err := session.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrDuplicateAccount):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusCreated, u)
		}
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		u, err := session.Login(c.Request.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, u)
		}
	}
}

func logoutHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Logout(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

func meHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := session.CurrentUser()
		if u == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func getCartHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items": ct.Items(),
			"total": ct.Total(),
			"count": ct.Count(),
		})
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
}

func addCartItemHandler(ct *cart.Cart, svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		p, err := svc.Find(c.Request.Context(), req.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ct.AddProduct(p)
		c.JSON(http.StatusOK, gin.H{"items": ct.Items(), "total": ct.Total()})
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func setCartQuantityHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		ct.SetQuantity(c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{"items": ct.Items(), "total": ct.Total()})
	}
}

func removeCartItemHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct.Remove(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"items": ct.Items(), "total": ct.Total()})
	}
}

func placeOrderHandler(ctrl *order.Controller, ct *cart.Cart, session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := ctrl.PlaceOrder(c.Request.Context(), ct, session)
		switch {
		case errors.Is(err, order.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusCreated, o)
		}
	}
}

func listOrdersHandler(ctrl *order.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ctrl.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": orders})
	}
}

func getOrderHandler(ctrl *order.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := ctrl.GetOrder(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// watchOrdersHandler streams the live order list over SSE until the client
// disconnects.
func watchOrdersHandler(ctrl *order.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, stop := ctrl.ObserveOrders(c.Request.Context())
		defer stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case orders, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("orders", orders)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
	"github.com/snngymn-development/modatasar-m/internal/middleware"
)

// purchaseHandler handles HTTP requests for purchase orders, goods receipts
// and purchase payments.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
	receiptService  portssvc.ReceiptSvcFacade
	paymentService  portssvc.PaymentSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade, rs portssvc.ReceiptSvcFacade, pay portssvc.PaymentSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps, receiptService: rs, paymentService: pay}
}

// registerPurchaseRoutes registers routes related to purchases.
// Item, charge and discount IDs are globally unique, so their mutation
// routes address them directly without repeating the purchase ID.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade, receiptService portssvc.ReceiptSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newPurchaseHandler(purchaseService, receiptService, paymentService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.PATCH("/:id", h.updatePurchase)

		purchases.POST("/:id/submit", h.submitPurchase)
		purchases.POST("/:id/close", h.closePurchase)
		purchases.POST("/:id/cancel", h.cancelPurchase)
		purchases.POST("/:id/recalc", h.recalculatePurchase)

		purchases.POST("/:id/items", h.addItem)
		purchases.PATCH("/items/:itemID", h.updateItem)
		purchases.DELETE("/items/:itemID", h.deleteItem)

		purchases.POST("/:id/charges", h.addCharge)
		purchases.PATCH("/charges/:chargeID", h.updateCharge)
		purchases.DELETE("/charges/:chargeID", h.deleteCharge)

		purchases.POST("/:id/discounts", h.addDiscount)
		purchases.PATCH("/discounts/:discountID", h.updateDiscount)
		purchases.DELETE("/discounts/:discountID", h.deleteDiscount)

		purchases.POST("/:id/receipts", h.createReceipt)
		purchases.POST("/:id/payments", h.addPayment)
	}
}

func (h *purchaseHandler) bindAndAuth(c *gin.Context, req any) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if req != nil {
		if err := c.ShouldBindJSON(req); err != nil {
			logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
			return "", false
		}
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createPurchase godoc
// @Summary Create a purchase order
// @Description Opens a new purchase in DRAFT with a generated PO code
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase header"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Tags purchases
// @Produce  json
// @Param   q query string false "Free text search over code and note"
// @Param   supplierId query string false "Supplier ID"
// @Param   type query string false "Purchase type"
// @Param   status query string false "Purchase status"
// @Param   paymentStatus query string false "Payment status"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(50)
// @Success 200 {object} dto.ListPurchasesResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPurchases", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPurchase godoc
// @Summary Get a purchase with its full aggregate
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// updatePurchase godoc
// @Summary Update purchase header fields
// @Description Changing the VAT rate recalculates all totals
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   purchase body dto.UpdatePurchaseRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase is closed or cancelled"
// @Security BearerAuth
// @Router /purchases/{id} [patch]
func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePurchaseRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// submitPurchase godoc
// @Summary Submit a draft purchase to the supplier
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase is not in DRAFT"
// @Security BearerAuth
// @Router /purchases/{id}/submit [post]
func (h *purchaseHandler) submitPurchase(c *gin.Context) {
	h.transition(c, h.purchaseService.SubmitPurchase, "Failed to submit purchase")
}

// closePurchase godoc
// @Summary Close a fully received purchase
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase is not fully received"
// @Security BearerAuth
// @Router /purchases/{id}/close [post]
func (h *purchaseHandler) closePurchase(c *gin.Context) {
	h.transition(c, h.purchaseService.ClosePurchase, "Failed to close purchase")
}

// cancelPurchase godoc
// @Summary Cancel a purchase
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase already terminal"
// @Security BearerAuth
// @Router /purchases/{id}/cancel [post]
func (h *purchaseHandler) cancelPurchase(c *gin.Context) {
	h.transition(c, h.purchaseService.CancelPurchase, "Failed to cancel purchase")
}

// recalculatePurchase godoc
// @Summary Rerun the allocation engine over a purchase
// @Description Recomputes and persists all line and header totals; idempotent
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Security BearerAuth
// @Router /purchases/{id}/recalc [post]
func (h *purchaseHandler) recalculatePurchase(c *gin.Context) {
	h.transition(c, h.purchaseService.Recalculate, "Failed to recalculate purchase")
}

// transition handles the body-less purchase actions that share a signature.
func (h *purchaseHandler) transition(c *gin.Context, fn func(ctx context.Context, purchaseID, userID string) (*domain.Purchase, error), fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := h.bindAndAuth(c, nil)
	if !ok {
		return
	}

	purchase, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, fallbackMsg)
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// addItem godoc
// @Summary Add a line item to a purchase
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   item body dto.AddPurchaseItemRequest true "Line item"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase is closed or cancelled"
// @Security BearerAuth
// @Router /purchases/{id}/items [post]
func (h *purchaseHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddPurchaseItemRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.AddItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add item")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// updateItem godoc
// @Summary Update a purchase line item
// @Description Ordered quantity cannot drop below the quantity already received
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   item body dto.UpdatePurchaseItemRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /purchases/items/{itemID} [patch]
func (h *purchaseHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePurchaseItemRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdateItem(c.Request.Context(), c.Param("itemID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deleteItem godoc
// @Summary Delete a purchase line item
// @Description Items with received stock cannot be deleted
// @Tags purchases
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Item has received stock"
// @Security BearerAuth
// @Router /purchases/items/{itemID} [delete]
func (h *purchaseHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := h.bindAndAuth(c, nil)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.DeleteItem(c.Request.Context(), c.Param("itemID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// addCharge godoc
// @Summary Add a header charge to a purchase
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   charge body dto.AddHeaderChargeRequest true "Header charge"
// @Success 200 {object} dto.PurchaseResponse
// @Security BearerAuth
// @Router /purchases/{id}/charges [post]
func (h *purchaseHandler) addCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddHeaderChargeRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.AddCharge(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add charge")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// updateCharge godoc
// @Summary Update a header charge
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   chargeID path string true "Charge ID"
// @Param   charge body dto.UpdateHeaderChargeRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Charge not found"
// @Security BearerAuth
// @Router /purchases/charges/{chargeID} [patch]
func (h *purchaseHandler) updateCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateHeaderChargeRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdateCharge(c.Request.Context(), c.Param("chargeID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update charge")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deleteCharge godoc
// @Summary Delete a header charge
// @Tags purchases
// @Produce  json
// @Param   chargeID path string true "Charge ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Charge not found"
// @Security BearerAuth
// @Router /purchases/charges/{chargeID} [delete]
func (h *purchaseHandler) deleteCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := h.bindAndAuth(c, nil)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.DeleteCharge(c.Request.Context(), c.Param("chargeID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete charge")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// addDiscount godoc
// @Summary Add a header discount to a purchase
// @Description ABS discounts carry an amount in cents, PCT discounts a percentage of the pre-allocation subtotal
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   discount body dto.AddHeaderDiscountRequest true "Header discount"
// @Success 200 {object} dto.PurchaseResponse
// @Security BearerAuth
// @Router /purchases/{id}/discounts [post]
func (h *purchaseHandler) addDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddHeaderDiscountRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.AddDiscount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add discount")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// updateDiscount godoc
// @Summary Update a header discount
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   discountID path string true "Discount ID"
// @Param   discount body dto.UpdateHeaderDiscountRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Discount not found"
// @Security BearerAuth
// @Router /purchases/discounts/{discountID} [patch]
func (h *purchaseHandler) updateDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateHeaderDiscountRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdateDiscount(c.Request.Context(), c.Param("discountID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update discount")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deleteDiscount godoc
// @Summary Delete a header discount
// @Tags purchases
// @Produce  json
// @Param   discountID path string true "Discount ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Discount not found"
// @Security BearerAuth
// @Router /purchases/discounts/{discountID} [delete]
func (h *purchaseHandler) deleteDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := h.bindAndAuth(c, nil)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.DeleteDiscount(c.Request.Context(), c.Param("discountID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete discount")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// createReceipt godoc
// @Summary Record a goods receipt
// @Description Records received quantities and advances the purchase to PARTIAL_RECEIVED or RECEIVED
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   receipt body dto.CreateReceiptRequest true "Receipt lines"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Over-receive or purchase cannot accept goods"
// @Security BearerAuth
// @Router /purchases/{id}/receipts [post]
func (h *purchaseHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.receiptService.CreateReceipt(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record receipt")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// addPayment godoc
// @Summary Record a payment against a purchase
// @Description Accumulates the paid amount and re-derives the payment status
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   payment body dto.AddPaymentRequest true "Payment"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 409 {object} map[string]string "Purchase is cancelled"
// @Security BearerAuth
// @Router /purchases/{id}/payments [post]
func (h *purchaseHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddPaymentRequest
	userID, ok := h.bindAndAuth(c, &req)
	if !ok {
		return
	}

	purchase, err := h.paymentService.AddPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

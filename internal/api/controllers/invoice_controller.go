package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"paylink/internal/models/db_models"
	"paylink/internal/models/request_models"
	"paylink/internal/models/response_models"
	"paylink/internal/services"
	"paylink/pkg/utils"
)

type InvoiceController struct {
	invoiceService services.InvoiceServiceInterface
}

func NewInvoiceController(invoiceService services.InvoiceServiceInterface) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

func (ic *InvoiceController) CreateInvoiceHandler(c *gin.Context) {
	var request request_models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	invoice, err := ic.invoiceService.CreateInvoice(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, invoice, "Invoice created")
}

// ListInvoicesHandler returns invoices newest first for the dashboard.
func (ic *InvoiceController) ListInvoicesHandler(c *gin.Context) {
	invoices, err := ic.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})

	utils.RespondSuccess(c, invoices, "Fetched invoices")
}

func (ic *InvoiceController) UpdateStatusHandler(c *gin.Context) {
	var request request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	invoice, err := ic.invoiceService.UpdateStatus(
		c.Request.Context(),
		request.ID,
		db_models.InvoiceStatus(request.Status),
		request.Method,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, invoice, "Invoice updated")
}

func (ic *InvoiceController) DeleteInvoiceHandler(c *gin.Context) {
	id := c.Param("id")

	deleted, err := ic.invoiceService.DeleteInvoice(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if !deleted {
		utils.RespondError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	utils.RespondSuccess(c, response_models.DeleteInvoiceResponse{Deleted: true}, "Invoice deleted")
}

// GetInvoiceBySlugHandler backs the public payment page.
func (ic *InvoiceController) GetInvoiceBySlugHandler(c *gin.Context) {
	slug := c.Param("slug")

	invoice, err := ic.invoiceService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, invoice, "Fetched invoice")
}

package controllers

import (
	"github.com/gin-gonic/gin"
	"paylink/internal/services"
	"paylink/pkg/utils"
)

type ReceiptController struct {
	receiptService services.ReceiptServiceInterface
}

func NewReceiptController(receiptService services.ReceiptServiceInterface) *ReceiptController {
	return &ReceiptController{
		receiptService: receiptService,
	}
}

// GetReceiptHandler renders a printable HTML receipt by invoice id.
func (rc *ReceiptController) GetReceiptHandler(c *gin.Context) {
	id := c.Param("id")

	page, err := rc.receiptService.RenderReceipt(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Data(200, "text/html; charset=utf-8", page)
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type createIntentReq struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// POST /payments/intent
func (ctl *PaymentController) CreateIntent(c *gin.Context) {
	var req createIntentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Payments.CreateIntent(utils.CurrentUserID(c), req.OrderID, req.Method)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, out)
}

type webhookReq struct {
	IntentRef string `json:"intentRef" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// POST /payments/webhook — processor callback; also hit by the return-URL
// confirmation screen
func (ctl *PaymentController) Webhook(c *gin.Context) {
	var req webhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Status != "succeeded" {
		resp.OK(c, gin.H{"ignored": true})
		return
	}
	if err := ctl.Payments.ConfirmPayment(req.IntentRef); err != nil {
		resp.NotFound(c, "payment not found")
		return
	}
	resp.OK(c, gin.H{"confirmed": true})
}

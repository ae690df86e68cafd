package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
)

type VerificationController struct {
	Verification *services.VerificationService
}

func NewVerificationController(v *services.VerificationService) *VerificationController {
	return &VerificationController{Verification: v}
}

type requestCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/verification/request
func (ctl *VerificationController) RequestCode(c *gin.Context) {
	var req requestCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Verification.RequestCode(req.Email); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

type verifyCodeReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// POST /auth/verification/verify
func (ctl *VerificationController) VerifyCode(c *gin.Context) {
	var req verifyCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := ctl.Verification.VerifyCode(req.Email, req.Code)
	switch {
	case err == nil:
		resp.OK(c, gin.H{"verified": true})
	case errors.Is(err, services.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
	case errors.Is(err, services.ErrCodeExpired):
		// deadline-exceeded class: the code stays until a new one replaces it
		c.JSON(http.StatusGone, gin.H{"ok": false, "error": "expired"})
	case errors.Is(err, services.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "mismatch"})
	default:
		resp.ServerError(c, err)
	}
}

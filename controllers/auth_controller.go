package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/pkg/resp"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// POST /auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.Auth.Register(req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, user)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.Auth.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}

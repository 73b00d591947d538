package public

import (
	"time"

	"github.com/furniture-shop/internal/constants"
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/i18n"

	"github.com/gin-gonic/gin"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	handlershared.CaptchaPayloadRequest
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest 申请重置密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangeUsernameRequest 修改用户名请求
type ChangeUsernameRequest struct {
	NewName string `json:"newName" binding:"required"`
}

func tokenPayload(token string, expiresAt time.Time) gin.H {
	return gin.H{
		"access_token": token,
		"expires_at":   expiresAt,
	}
}

// Signup 用户注册
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneSignup, req.CaptchaPayloadRequest) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Signup(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithMappedError(c, err, signupErrorRules)
		return
	}
	requestLog(c).Infow("user_signup", "user_id", user.ID)
	response.Created(c, tokenPayload(token, expiresAt))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	_, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules)
		return
	}
	response.Success(c, tokenPayload(token, expiresAt))
}

// ForgotPassword 发送重置密码邮件
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.RequestPasswordReset(req.Email); err != nil {
		respondWithMappedError(c, err, passwordResetRequestErrorRules)
		return
	}
	respondMessage(c, "message.password_reset_sent")
}

// ResetPassword 通过令牌重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondWithMappedError(c, err, passwordResetErrorRules)
		return
	}
	respondMessage(c, "message.password_reset_done")
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, passwordChangeErrorRules)
		return
	}
	respondMessage(c, "message.password_updated")
}

// ChangeUsername 修改用户名
func (h *Handler) ChangeUsername(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangeUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangeUsername(userID, req.NewName); err != nil {
		respondWithMappedError(c, err, usernameChangeErrorRules)
		return
	}
	respondMessage(c, "message.username_updated")
}

// GetMe 当前用户资料
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules)
		return
	}
	response.Success(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

func respondMessage(c *gin.Context, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.SuccessWithMsg(c, msg, gin.H{"message": msg})
}

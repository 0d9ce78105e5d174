package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/auth"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup, login and the current-user lookup.
type AuthHandler struct {
	Auth  *auth.Service
	Users *store.UserStore
}

func NewAuthHandler(authSvc *auth.Service, users *store.UserStore) *AuthHandler {
	return &AuthHandler{Auth: authSvc, Users: users}
}

type signupReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, email and password are required")
		return
	}

	user, tok, err := h.Auth.Register(strings.TrimSpace(req.Name), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			util.Error(c, http.StatusConflict, util.CodeConflict, "user with this email already exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to register user")
		return
	}

	util.Success(c, util.Response{
		"token": tok,
		"user":  userResp(user),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password are required")
		return
	}

	user, tok, err := h.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "login failed")
		return
	}

	util.Success(c, util.Response{
		"token": tok,
		"user":  userResp(user),
	})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account no longer exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		return
	}

	util.Success(c, util.Response{"user": userResp(user)})
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
}

package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/user"
)

// UserHandler serves signup, login, and token verification.
type UserHandler struct {
	users  *user.Service
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *user.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// RegisterPublic mounts the unauthenticated routes.
func (h *UserHandler) RegisterPublic(r *gin.RouterGroup) {
	routes := r.Group("/user")
	routes.POST("/signup/", h.signup)
	routes.POST("/login/", h.login)
}

// Register mounts the authenticated routes.
func (h *UserHandler) Register(r *gin.RouterGroup) {
	r.GET("/user/test-token/", h.testToken)
}

type signupForm struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, token, err := h.users.Signup(c.Request.Context(), user.SignupRequest{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("user signed up", "username", account.Username)
	c.JSON(http.StatusCreated, gin.H{"user": account, "token": token})
}

func (h *UserHandler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, token, err := h.users.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account, "token": token})
}

func (h *UserHandler) testToken(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/core/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/hestiabank/property_portal_app/internal/utils"
	"github.com/hestiabank/property_portal_app/pkg/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// userHandler handles HTTP requests related to portal accounts and auth.
type userHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, cfg *config.Config) *userHandler {
	return &userHandler{
		userService: us,
		cfg:         cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes with per-IP
// rate limiting.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/register", middleware.RateLimit(ipLimiter), h.register)
	}
}

// registerUserRoutes registers the authenticated account management routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, cfg *config.Config) {
	h := newUserHandler(userService, cfg)

	users := rg.Group("/users")
	{
		users.POST("", middleware.RequireRole(domain.RoleAdmin), h.createUser)
		users.GET("", middleware.RequireRole(domain.RoleEmployee), h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deleteUser)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT carrying the role claim.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid username or password"
// @Router /auth/login [post]
func (h *userHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.Role, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

// register godoc
// @Summary Register a new account
// @Description Self-registration. The new account always gets the base role.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /auth/register [post]
func (h *userHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	// Public route: no actor, and no role escalation.
	req.Role = ""

	user, err := h.userService.CreateUser(c.Request.Context(), req, domain.Actor{})
	if err != nil {
		respondServiceError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// createUser godoc
// @Summary Create a user
// @Description Administrative account creation, including elevated roles.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListUsersResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	limit, offset := paginationFromQuery(c)
	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ListUsersResponse{Users: dto.ToUserResponses(users)})
}

// updateUser godoc
// @Summary Update a user
// @Description Users edit their own profile; role changes require admin.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

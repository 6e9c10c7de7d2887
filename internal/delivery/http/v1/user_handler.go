package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type UserHandler struct {
	userUC  domain.UserUsecase
	statsUC domain.StatsUsecase
}

// NewUserHandler registers profile and stats routes
func NewUserHandler(r *gin.RouterGroup, userUC domain.UserUsecase, statsUC domain.StatsUsecase) {
	handler := &UserHandler{userUC: userUC, statsUC: statsUC}

	users := r.Group("/users")
	{
		users.GET("/me", handler.GetProfile)
		users.PUT("/me", handler.UpdateProfile)
		users.GET("/me/stats", handler.GetStats)
	}
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.userUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfileRequest is the request payload for profile updates
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	PreferredRole   *string `json:"preferred_role"`
	ExperienceLevel *int    `json:"experience_level"`
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidArgument(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userID, domain.UpdateProfileInput{
		Name:            req.Name,
		PreferredRole:   req.PreferredRole,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// GetStats godoc
// @Summary      Get my dashboard statistics
// @Description  Reductions over completed interviews. Optional window query returns windowed stats only.
// @Tags         users
// @Produce      json
// @Param        window  query     string  false  "Time window (today, week, month, all)"
// @Success      200     {object}  response.Response{data=domain.UserStats}
// @Router       /users/me/stats [get]
// @Security     BearerAuth
func (h *UserHandler) GetStats(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if window, ok := c.GetQuery("window"); ok {
		stats, err := h.statsUC.TimeWindowed(c.Request.Context(), userID, domain.ParseTimeWindow(window))
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Windowed stats retrieved", stats)
		return
	}

	stats, err := h.statsUC.UserStats(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

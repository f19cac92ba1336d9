package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/seed"
	"github.com/Vu1can09/twitch-clone/internal/service"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.Users
	directory   service.Directory
	follows     service.FollowCoordinator
	streams     service.LiveStreamRegistry
	streamStore store.LiveStreams
	jwtSecret   string
}

func NewHandler(
	users service.Users,
	directory service.Directory,
	follows service.FollowCoordinator,
	streams service.LiveStreamRegistry,
	streamStore store.LiveStreams,
	jwtSecret string,
) *Handler {
	return &Handler{
		users:       users,
		directory:   directory,
		follows:     follows,
		streams:     streams,
		streamStore: streamStore,
		jwtSecret:   jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.GET("/users/:identifier", h.resolveUser)
		api.GET("/livestreams", h.listLiveStreams)
	}

	mutating := api.Group("")
	// An empty secret disables auth, for local development only.
	if h.jwtSecret != "" {
		mutating.Use(requireAuth(h.jwtSecret))
	}
	{
		mutating.POST("/users", h.createUser)
		mutating.PUT("/users/:identifier/interests", h.setInterests)
		mutating.POST("/users/:identifier/follow", h.toggleFollow)
		mutating.POST("/livestreams", h.createLiveStream)
		mutating.DELETE("/livestreams/:username", h.deleteLiveStream)
		mutating.POST("/demo/livestreams", h.installDemoStreams)
		mutating.DELETE("/demo/livestreams", h.removeDemoStreams)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type createUserRequest struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name" binding:"required"`
	ImageURL    string `json:"image_url"`
	Mail        string `json:"mail"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserParams{
		UserID:      req.UserID,
		UserName:    req.UserName,
		ImageURL:    req.ImageURL,
		Mail:        req.Mail,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) resolveUser(c *gin.Context) {
	by := service.LookupKey(c.DefaultQuery("by", string(service.ByID)))
	if by != service.ByID && by != service.ByHandle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter by must be id or handle"})
		return
	}

	user, err := h.directory.Resolve(c.Request.Context(), c.Param("identifier"), by)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

type setInterestsRequest struct {
	Interests []string `json:"interests"`
}

func (h *Handler) setInterests(c *gin.Context) {
	var req setInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SetInterests(c.Request.Context(), c.Param("identifier"), req.Interests)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

type toggleFollowRequest struct {
	TargetUserName string `json:"target_user_name" binding:"required"`
}

func (h *Handler) toggleFollow(c *gin.Context) {
	actorID := c.Param("identifier")
	if caller := authUserID(c); caller != "" && caller != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot follow on behalf of another user"})
		return
	}

	var req toggleFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	toggled, err := h.follows.ToggleFollow(c.Request.Context(), actorID, req.TargetUserName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"toggled": toggled})
}

func (h *Handler) listLiveStreams(c *gin.Context) {
	streams, err := h.streams.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]LiveStreamResponse, len(streams))
	for i := range streams {
		resp[i] = liveStreamToResponse(streams[i])
	}
	c.JSON(http.StatusOK, resp)
}

type createLiveStreamRequest struct {
	Name            string   `json:"name" binding:"required"`
	Categories      []string `json:"categories"`
	UserName        string   `json:"user_name" binding:"required"`
	ProfileImageURL string   `json:"profile_image_url"`
}

func (h *Handler) createLiveStream(c *gin.Context) {
	var req createLiveStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stream, err := h.streams.Create(c.Request.Context(), req.Name, req.Categories, req.UserName, req.ProfileImageURL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, liveStreamToResponse(*stream))
}

func (h *Handler) deleteLiveStream(c *gin.Context) {
	deleted, err := h.streams.Delete(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) installDemoStreams(c *gin.Context) {
	if err := seed.Install(c.Request.Context(), h.streamStore); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"installed": true})
}

func (h *Handler) removeDemoStreams(c *gin.Context) {
	removed, err := seed.Remove(c.Request.Context(), h.streamStore)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var partial *service.PartialFailureError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidLookupKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAmbiguousMatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &partial):
		// The follow edge may be half-applied; the client should re-resolve
		// both users instead of trusting the toggle outcome.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "partial": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type UserResponse struct {
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name"`
	ImageURL    string   `json:"image_url"`
	Mail        string   `json:"mail"`
	DateOfBirth string   `json:"date_of_birth"`
	Interests   []string `json:"interests"`
	Following   []string `json:"following"`
	Followers   []string `json:"followers"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type LiveStreamResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Categories      []string `json:"categories"`
	UserName        string   `json:"user_name"`
	ProfileImageURL string   `json:"profile_image_url"`
	CreatedAt       string   `json:"created_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		UserName:    user.UserName,
		ImageURL:    user.ImageURL,
		Mail:        user.Mail,
		DateOfBirth: user.DateOfBirth,
		Interests:   user.Interests,
		Following:   user.Following,
		Followers:   user.Followers,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}

func liveStreamToResponse(stream domain.LiveStream) LiveStreamResponse {
	return LiveStreamResponse{
		ID:              stream.ID,
		Name:            stream.Name,
		Categories:      stream.Categories,
		UserName:        stream.UserName,
		ProfileImageURL: stream.ProfileImageURL,
		CreatedAt:       stream.CreatedAt.Format(time.RFC3339),
	}
}

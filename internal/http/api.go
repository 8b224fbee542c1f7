package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	tasks       service.TaskService
	attachments service.AttachmentService
	tokens      *auth.TokenManager
	logger      *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, attachments service.AttachmentService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:       users,
		tasks:       tasks,
		attachments: attachments,
		tokens:      tokens,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.signup)
			authGroup.POST("/login", h.login)
		}

		userGroup := api.Group("/user", h.requireAuth())
		{
			userGroup.GET("/profile", h.getProfile)
			userGroup.PUT("/profile", h.updateProfile)
		}

		taskGroup := api.Group("/tasks", h.requireAuth())
		{
			taskGroup.GET("", h.listTasks)
			taskGroup.POST("", h.createTask)
			taskGroup.GET("/:id", h.getTask)
			taskGroup.PUT("/:id", h.updateTask)
			taskGroup.DELETE("/:id", h.deleteTask)

			taskGroup.GET("/:id/attachments", h.listAttachments)
			taskGroup.POST("/:id/attachments", h.uploadAttachment)
			taskGroup.GET("/:id/attachments/:attachmentId/url", h.attachmentURL)
			taskGroup.DELETE("/:id/attachments/:attachmentId", h.deleteAttachment)
		}
	}
}

// writeError is the single translation point from error kinds to transport
// status codes. Unknown errors are logged and surfaced as a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var kinded *domain.Error
	if errors.As(err, &kinded) {
		status := http.StatusInternalServerError
		switch kinded.Kind {
		case domain.KindValidation:
			status = http.StatusBadRequest
		case domain.KindUnauthenticated:
			status = http.StatusUnauthorized
		case domain.KindNotFound:
			status = http.StatusNotFound
		case domain.KindUnavailable:
			status = http.StatusServiceUnavailable
		}
		if status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": kinded.Message})
			return
		}
	}

	h.logger.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	OwnerID     string            `json:"owner_id"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *Handler) getProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(updated))
}

func (h *Handler) listTasks(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTask(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), user.ID, req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskToResponse(*task))
}

func (h *Handler) getTask(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) updateTask(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), user.ID, c.Param("id"), req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) deleteTask(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	id := c.Param("id")
	warnings := h.attachments.CleanupObjects(c.Request.Context(), user.ID, id)

	if err := h.tasks.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"message": "Task removed"}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAttachments(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	atts, err := h.attachments.List(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]AttachmentResponse, len(atts))
	for i := range atts {
		resp[i] = attachmentToResponse(atts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadAttachment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer f.Close()

	att, err := h.attachments.Attach(
		c.Request.Context(),
		user.ID,
		c.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attachmentToResponse(*att))
}

func (h *Handler) attachmentURL(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	url, err := h.attachments.URL(c.Request.Context(), user.ID, c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) deleteAttachment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	if err := h.attachments.Remove(c.Request.Context(), user.ID, c.Param("id"), c.Param("attachmentId")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment removed"})
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func attachmentToResponse(att domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          att.ID,
		TaskID:      att.TaskID,
		Name:        att.Name,
		Size:        att.Size,
		ContentType: att.ContentType,
		CreatedAt:   att.CreatedAt.Format(time.RFC3339),
	}
}

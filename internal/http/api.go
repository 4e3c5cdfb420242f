package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/service"
)

// Handler wires HTTP routes to the usuario service.
type Handler struct {
	usuarios service.UsuarioService
	logger   *logrus.Logger
}

func NewHandler(usuarios service.UsuarioService, logger *logrus.Logger) *Handler {
	return &Handler{
		usuarios: usuarios,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/users", h.listUsuarios)
	router.GET("/users/:id", h.getUsuario)
	router.POST("/users", h.createUsuario)
	router.PUT("/users/:id", h.updateUsuario)
	router.DELETE("/users/:id", h.deleteUsuario)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

// Envelope is the uniform response wrapper shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UsuarioRequest is the body accepted by POST /users and PUT /users/:id.
// ActiveUser is a pointer so that an absent flag survives decoding.
type UsuarioRequest struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Fechanac   string `json:"fechanac"`
	ActiveUser *bool  `json:"active_user"`
}

// UsuarioResponse is the persisted record shape exposed by the API.
type UsuarioResponse struct {
	ID         int64  `json:"id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Fechanac   string `json:"fechanac"`
	ActiveUser bool   `json:"active_user"`
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
		}).Info("request")
	}
}

func (h *Handler) listUsuarios(c *gin.Context) {
	usuarios, err := h.usuarios.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Error interno del servidor al obtener usuarios")
		return
	}

	data := make([]UsuarioResponse, len(usuarios))
	for i := range usuarios {
		data[i] = usuarioToResponse(usuarios[i])
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: "Usuarios obtenidos correctamente",
	})
}

func (h *Handler) getUsuario(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	usuario, err := h.usuarios.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, Envelope{Success: false, Error: "Usuario no encontrado"})
			return
		}
		h.internalError(c, err, "Error interno del servidor al obtener usuario")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    usuarioToResponse(*usuario),
		Message: "Usuario obtenido correctamente",
	})
}

func (h *Handler) createUsuario(c *gin.Context) {
	var req UsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "Cuerpo de la petición inválido"})
		return
	}

	usuario, err := h.usuarios.Create(c.Request.Context(), requestToInput(req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
			return
		}
		h.internalError(c, err, "Error interno del servidor al crear usuario")
		return
	}

	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    usuarioToResponse(*usuario),
		Message: "Usuario creado correctamente",
	})
}

func (h *Handler) updateUsuario(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "Cuerpo de la petición inválido"})
		return
	}

	usuario, err := h.usuarios.Update(c.Request.Context(), id, requestToInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, Envelope{Success: false, Error: "Usuario no encontrado"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		default:
			h.internalError(c, err, "Error interno del servidor al actualizar usuario")
		}
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    usuarioToResponse(*usuario),
		Message: "Usuario actualizado correctamente",
	})
}

func (h *Handler) deleteUsuario(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.usuarios.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, Envelope{Success: false, Error: "Usuario no encontrado"})
			return
		}
		h.internalError(c, err, "Error interno del servidor al eliminar usuario")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Usuario eliminado correctamente",
	})
}

// parseID rejects non-integer path ids with 400 before any store access.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "ID de usuario inválido"})
		return 0, false
	}
	return id, true
}

func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	h.logger.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: msg})
}

func requestToInput(req UsuarioRequest) service.UsuarioInput {
	return service.UsuarioInput{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Fechanac:   req.Fechanac,
		ActiveUser: req.ActiveUser,
	}
}

func usuarioToResponse(usuario domain.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:         usuario.ID,
		Nombre:     usuario.Nombre,
		Apellido:   usuario.Apellido,
		Fechanac:   usuario.Fechanac.Format(time.DateOnly),
		ActiveUser: usuario.ActiveUser,
	}
}

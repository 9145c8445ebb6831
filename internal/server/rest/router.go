// Package rest exposes the AteliêPerto backend HTTP API over Gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/atelieperto/atelieperto/internal/logging"
	"github.com/atelieperto/atelieperto/internal/server/models"
)

// msgInvalidCredentials is shown verbatim by the mobile client.
const msgInvalidCredentials = "credenciais inválidas"

type UserService interface {
	Login(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ProviderService interface {
	List(ctx context.Context) ([]models.Provider, error)
	Featured(ctx context.Context) ([]models.Provider, error)
	Profile(ctx context.Context, id int64) (*models.Profile, error)
}

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(users UserService, providers ProviderService, jwtSecret []byte, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogMiddleware(log), gin.Recovery())

	r.GET("/api/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", func(c *gin.Context) {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid json")
				return
			}

			user, err := users.Login(c.Request.Context(), req.Username, req.Password)
			if err != nil {
				if errors.Is(err, common.ErrorUnauthorized) {
					respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
					return
				}
				respondError(c, http.StatusInternalServerError, "internal error")
				return
			}

			c.JSON(http.StatusOK, user)
		})

		api.GET("/users/me", AuthRequired(jwtSecret), func(c *gin.Context) {
			userID := c.GetInt64(userIDContextKey)

			u, err := users.GetByID(c.Request.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					respondError(c, http.StatusUnauthorized, "conta não encontrada")
					return
				}
				respondError(c, http.StatusInternalServerError, "internal error")
				return
			}
			c.JSON(http.StatusOK, u)
		})

		api.GET("/providers", func(c *gin.Context) {
			list, err := providers.List(c.Request.Context())
			if err != nil {
				respondError(c, http.StatusInternalServerError, "internal error")
				return
			}
			c.JSON(http.StatusOK, list)
		})

		api.GET("/providers/featured", func(c *gin.Context) {
			list, err := providers.Featured(c.Request.Context())
			if err != nil {
				respondError(c, http.StatusInternalServerError, "internal error")
				return
			}
			c.JSON(http.StatusOK, list)
		})

		api.GET("/providers/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil || id <= 0 {
				respondError(c, http.StatusBadRequest, "invalid id")
				return
			}

			p, err := providers.Profile(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					respondError(c, http.StatusNotFound, "costureira não encontrada")
					return
				}
				respondError(c, http.StatusInternalServerError, "internal error")
				return
			}
			c.JSON(http.StatusOK, p)
		})
	}

	return r
}

// respondError sends the unified error payload {"message": ...}.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both sign-up and login.
type authCredentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// @Summary      Register
// @Description  Creates a user and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "credentials"
// @Success      201   {object}  TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "username already exists"
// @Router       /auth/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		h.writeError(c, "auth_sign_up_error", err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Token: token, Username: strings.TrimSpace(input.Username)})
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "credentials"
// @Success      200   {object}  TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string  "invalid credentials"
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		}
		h.writeError(c, "auth_login_error", err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, Username: strings.TrimSpace(input.Username)})
}

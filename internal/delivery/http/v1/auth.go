package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/adanyl0v/go-todo-api/internal/services"
)

type authResponse struct {
	AuthToken string `json:"authToken"`
	Message   string `json:"message"`
}

type signupRequest struct {
	Username string `json:"username" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=7,max=255"`
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("signup request")

	result, err := h.auth.Signup(c.Request.Context(), services.SignupParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign up")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(msgUserAlreadyExists))
		default:
			abort(c, newInternalServerError())
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		AuthToken: result.Token,
		Message:   "User created successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newBadRequestError(msgInvalidCredentials))
		default:
			abort(c, newInternalServerError())
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		AuthToken: result.Token,
		Message:   "Login successful",
	})
}

// bindJSON binds and validates the request body, aborting with a 400
// on failure. An empty body is validated as an empty object.
func (h *handlerImpl) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return true
	}

	h.logger.Error().
		Err(err).
		Msg("failed to bind json")
	if errs, ok := fieldErrors(err); ok {
		abortWithFieldErrors(c, errs)
	} else {
		abort(c, newBadRequestError(msgInvalidRequestBody))
	}
	return false
}

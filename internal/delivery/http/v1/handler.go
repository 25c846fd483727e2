package v1

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/services"
)

type Handler interface {
	HandleSignup(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleAddTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	auth       services.AuthService
	tasks      services.TaskService
	tokens     services.TokenService
	authHeader string
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// New returns an error if the request validation rules can't be
// installed on gin's validator.
func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	tokenService services.TokenService,
	authHeader string,
) (Handler, error) {
	validatorsOnce.Do(func() {
		validatorsErr = registerValidators(binding.Validator.Engine())
	})
	if validatorsErr != nil {
		return nil, fmt.Errorf("failed to register validators: %w", validatorsErr)
	}

	return &handlerImpl{
		logger:     logger,
		auth:       authService,
		tasks:      taskService,
		tokens:     tokenService,
		authHeader: authHeader,
	}, nil
}

// Register mounts the account and task routes.
func Register(router gin.IRouter, h Handler) {
	authRouter := router.Group("/auth")
	authRouter.POST("/signup", h.HandleSignup)
	authRouter.POST("/login", h.HandleLogin)

	listRouter := router.Group("/list", h.HandleAuthMiddleware)
	listRouter.POST("/add", h.HandleAddTask)
	listRouter.PUT("/update/:id", h.HandleUpdateTask)
	listRouter.DELETE("/delete/:id", h.HandleDeleteTask)
	listRouter.GET("/getall", h.HandleGetTasks)
	listRouter.GET("/get/:id", h.HandleGetTask)
}

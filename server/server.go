package server

import (
	"errors"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	gateway "github.com/ncecere/prompt-gateway"
	"github.com/ncecere/prompt-gateway/registry"
)

const (
	// EndPointHealth reports service liveness.
	EndPointHealth = "/health"
	// EndPointGenerate accepts prompts.
	EndPointGenerate = "/generate"

	serviceName = "prompt-gateway"
)

// Options configures the HTTP application.
type Options struct {
	// Debug enables per-request access logs and the startup banner.
	Debug bool
	// Logger receives handler logs. If nil, the apex/log package-level
	// logger is used.
	Logger log.Interface
}

// New builds the Fiber application serving the gateway endpoints.
func New(completer gateway.Completer, presets registry.Registry, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = log.Log
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: !opts.Debug,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	// An empty AllowHeaders echoes the preflight's requested headers.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	if opts.Debug {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	h := NewHandler(completer, presets, opts.Logger)

	app.Get(EndPointHealth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": serviceName,
		})
	})
	app.Post(EndPointGenerate, h.Generate)

	return app
}

// errorHandler renders errors that escape handlers (unknown routes,
// recovered panics) in the same {"response": ...} shape as /generate.
func errorHandler(l log.Interface) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			l.WithFields(log.Fields{
				"request_id": requestID(c),
				"path":       c.Path(),
			}).WithError(err).Error("http.unhandled")
		}
		return c.Status(code).JSON(GenerateResponse{Response: errorPrefix + err.Error()})
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

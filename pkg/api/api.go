// Package api exposes the expression engine over HTTP.
package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketcalc/pocketcalc/pkg/expr"
	"github.com/pocketcalc/pocketcalc/pkg/history"
	"github.com/pocketcalc/pocketcalc/pkg/rewrite"
)

// Server is the HTTP API server for the calculator.
type Server struct {
	app            *fiber.App
	history        *history.Log
	rules          *rewrite.Ruleset
	defaultDegrees bool
}

// New creates the API server. The rewriter handles requests flagged as
// natural language; defaultDegrees is the angle mode used when a request
// does not specify one.
func New(log *history.Log, rules *rewrite.Ruleset, defaultDegrees bool) *Server {
	srv := &Server{
		history:        log,
		rules:          rules,
		defaultDegrees: defaultDegrees,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	app.Post("/v1/evaluate", srv.evaluate)
	app.Get("/v1/history", srv.listHistory)
	app.Delete("/v1/history", srv.clearHistory)
	app.Get("/healthz", srv.health)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

type evaluateRequest struct {
	Expression string `json:"expression"`
	DegreeMode *bool  `json:"degreeMode"`
	Natural    bool   `json:"natural"`
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "invalid request body: " + err.Error(),
				"kind":    "request",
			},
		})
	}
	if req.Expression == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "expression is required",
				"kind":    "request",
			},
		})
	}

	degrees := s.defaultDegrees
	if req.DegreeMode != nil {
		degrees = *req.DegreeMode
	}

	input := req.Expression
	expression := input
	if req.Natural {
		expression = s.rules.Apply(input)
	}

	result, err := expr.Evaluate(expression, expr.Options{Degrees: degrees})
	if err != nil {
		return c.Status(422).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    422,
				"message": err.Error(),
				"kind":    errorKind(err),
			},
		})
	}

	rendered := strconv.FormatFloat(result, 'g', -1, 64)
	s.history.Add(expression, rendered)

	return c.JSON(fiber.Map{
		"input":      input,
		"expression": expression,
		"result":     result,
		"degreeMode": degrees,
	})
}

func (s *Server) listHistory(c *fiber.Ctx) error {
	entries := s.history.Entries()
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) clearHistory(c *fiber.Ctx) error {
	s.history.Clear()
	return c.SendStatus(204)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// errorKind maps a pipeline error to the stage that raised it.
func errorKind(err error) string {
	var (
		lexErr   *expr.LexError
		parseErr *expr.ParseError
		evalErr  *expr.EvalError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &evalErr):
		return "eval"
	default:
		return "internal"
	}
}

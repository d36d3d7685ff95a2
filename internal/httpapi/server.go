// Package httpapi serves game classification over HTTP.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/classify"
	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/processing"
)

// Server wraps the fiber app and the classifier behind it.
type Server struct {
	app        *fiber.App
	classifier *classify.Classifier
	pipeline   config.PipelineConfig
	logger     *zap.Logger
}

// New builds the app with its routes.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		classifier: classify.New(classify.WithMaxPlies(cfg.Pipeline.MaxPlies), classify.WithLogger(logger)),
		pipeline:   cfg.Pipeline,
		logger:     logger,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          35 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             8 << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(s.requestLogger)

	app.Get("/healthz", s.health)
	v1 := app.Group("/v1")
	v1.Get("/end-codes", s.endCodes)
	v1.Post("/classify", s.classify)
	v1.Post("/classify/batch", s.classifyBatch)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)))
	return err
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	resp := ErrorResponse{Error: "internal server error"}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		resp.Error = fe.Message
	} else {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(resp)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// EndCodeInfo is one entry of GET /v1/end-codes.
type EndCodeInfo struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

func (s *Server) endCodes(c *fiber.Ctx) error {
	codes := classify.AllEndCodes()
	out := make([]EndCodeInfo, len(codes))
	for i, code := range codes {
		out[i] = EndCodeInfo{Code: int(code), Reason: code.Reason()}
	}
	return c.JSON(out)
}

func badRequest(c *fiber.Ctx, msg string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg, Details: describe(err)})
}

func (s *Server) classify(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err)
	}

	res, err := s.classifier.Classify(req.Record())
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: "invalid game record", Details: err.Error()})
	}
	return c.JSON(res)
}

// BatchResponse is the reply of POST /v1/classify/batch.
type BatchResponse struct {
	RunID   string            `json:"run_id"`
	Results []classify.Result `json:"results"`
	ByCode  map[string]int    `json:"by_code"`
}

func (s *Server) classifyBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err)
	}

	recs := make([]chess.GameRecord, 0, len(req.Games))
	for i := range req.Games {
		recs = append(recs, req.Games[i].Record())
	}
	cfg := s.pipeline
	cfg.Strict = false
	results, stats, err := processing.ClassifyAll(c.UserContext(), cfg, recs, processing.WithLogger(s.logger))
	if err != nil {
		return err
	}

	byCode := make(map[string]int)
	for _, code := range classify.AllEndCodes() {
		if n := stats.ByCode[code]; n > 0 {
			byCode[code.Reason()] = n
		}
	}
	return c.JSON(BatchResponse{RunID: stats.RunID, Results: results, ByCode: byCode})
}

package internal

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templatesFS embed.FS

// PageData is what the index template renders
type PageData struct {
	URL       string
	Title     string
	Tokens    string
	Summary   string
	Error     string
	Submitted bool
}

// Server serves the summarize form over HTTP
type Server struct {
	app  *App
	http *fiber.App
	page *template.Template
	log  zerolog.Logger
}

// NewServer creates the HTTP server and registers its routes
func NewServer(app *App, log zerolog.Logger) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	s := &Server{
		app:  app,
		page: page,
		log:  log.With().Str("component", "http").Logger(),
	}

	s.http = fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.http.Use(recover.New())
	s.http.Use(logger.New(logger.Config{
		Output: s.log,
		Format: "${status} ${method} ${path} ${latency}\n",
	}))

	s.http.Get("/", s.handleIndex)
	s.http.Post("/", s.handleSubmit)
	s.http.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return s, nil
}

// Fiber exposes the underlying fiber app
func (s *Server) Fiber() *fiber.App {
	return s.http
}

// Listen serves HTTP on addr until Shutdown is called
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.http.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown() error {
	return s.http.Shutdown()
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, PageData{})
}

func (s *Server) handleSubmit(c *fiber.Ctx) error {
	videoURL := strings.TrimSpace(c.FormValue("youtube_url"))
	if videoURL == "" {
		return s.render(c, fiber.StatusBadRequest, PageData{Error: "Please enter a YouTube URL."})
	}

	result, err := s.app.Run(c.UserContext(), videoURL)
	if err != nil {
		return err
	}

	data := PageData{
		URL:       result.URL,
		Title:     result.Title,
		Tokens:    result.Tokens(),
		Summary:   result.Summary,
		Submitted: true,
	}
	if err := s.render(c, fiber.StatusOK, data); err != nil {
		return err
	}

	s.log.Info().
		Str("url", videoURL).
		Stringer("summary", result.SummaryStatus).
		Stringer("stage", StageRendered).
		Msg("request complete")
	return nil
}

// handleError renders failures as the form page with a fixed message
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := MsgInternalError

	var fe *fiber.Error
	switch {
	case errors.Is(err, ErrFetchFailed):
		message = MsgFetchFailed
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	s.log.Error().Err(err).Int("status", code).Str("path", c.Path()).Msg("request failed")

	data := PageData{Error: message}
	if c.Method() == fiber.MethodPost {
		data.URL = strings.TrimSpace(c.FormValue("youtube_url"))
	}
	if renderErr := s.render(c, code, data); renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}

func (s *Server) render(c *fiber.Ctx, status int, data PageData) error {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

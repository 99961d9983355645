package mlserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/lib/storage"
)

const Version = "1.0.0"

// Uploader stores the raw video. *storage.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (int64, error)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	MLAvailable bool      `json:"ml_available"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
}

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	Status    string            `json:"status"`
}

type Server struct {
	cfg     *Config
	logger  *zerolog.Logger
	uploads Uploader
	sim     *simulator
	now     func() time.Time
	echo    *echo.Echo
}

// New builds the server. uploads may be nil.
func New(cfg *Config, logger *zerolog.Logger, uploads Uploader) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		uploads: uploads,
		sim:     newSimulator(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:     time.Now,
	}
	s.echo = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType},
		}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogMethod:  true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("API")
				return nil
			},
		}),
		middleware.Recover(),
	)

	e.GET("/", s.index)
	e.GET("/health", s.health)
	e.POST("/analyze_video", s.analyzeVideo)

	return e
}

func (s *Server) index(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Message: "Sports Assessment ML Server",
		Endpoints: map[string]string{
			"health":        "GET /health",
			"analyze_video": "POST /analyze_video",
		},
		Status: "running",
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:      "healthy",
		MLAvailable: false,
		Message:     "ML Server Running (Simulation Mode)",
		Timestamp:   s.now().UTC(),
		Version:     Version,
	})
}

func (s *Server) analyzeVideo(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, s.cfg.MaxUploadBytes+1<<20)

	file, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, s.tooLarge())
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No video file provided"})
	}
	if file.Size > s.cfg.MaxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, s.tooLarge())
	}

	exercise := c.FormValue("exercise_type")
	if exercise == "" {
		exercise = DefaultExercise
	}

	logger := s.logger.With().
		Str("exercise_type", exercise).
		Int64("size", file.Size).
		Logger()

	var videoKey string
	if s.uploads != nil {
		videoKey, err = s.store(req.Context(), file)
		if err != nil {
			logger.Warn().Err(err).Msg("video upload failed, analysing without storing")
			videoKey = ""
		}
	}

	select {
	case <-time.After(s.cfg.AnalysisDelay):
	case <-req.Context().Done():
		return req.Context().Err()
	}

	result := s.sim.analyze(exercise, s.now().UTC())
	result.VideoKey = videoKey

	logger.Info().
		Int("repetitions", result.Repetitions).
		Float64("form_score", result.FormScore).
		Msg("video analysed")

	return c.JSON(http.StatusOK, result)
}

func (s *Server) store(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.VideoKey("ml", file.Filename)
	if _, err := s.uploads.Upload(ctx, key, src, file.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Server) tooLarge() errorResponse {
	return errorResponse{Error: fmt.Sprintf("Video exceeds the %dMB limit", s.cfg.MaxUploadBytes>>20)}
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.cfg.Port).Msg("starting ML server (simulation mode)")
	return s.echo.Start(":" + s.cfg.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-employee-import/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const (
	appName    = "hris-employee-import"
	appVersion = "v1.0.0"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

// NewLogger builds the JSON slog logger shared by the request logger and the
// rest of the application.
func NewLogger(w io.Writer, env string, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, importHandler ImportHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Tokens only name the uploader; requests without one are anonymous.
	if JWTService != nil && JWTService.Enabled() {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.ResolveActor)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Route("/import", func(r chi.Router) {
				r.Post("/", importHandler.Import)
				r.Get("/template", importHandler.DownloadTemplate)
				r.Get("/results/{id}", importHandler.GetResult)
			})
			r.Get("/{id}", employeeHandler.GetEmployee)
		})
	})
	return r
}

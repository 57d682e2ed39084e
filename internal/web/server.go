package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	applog "extras-cli/internal/log"
	"extras-cli/internal/store"

	"github.com/gin-gonic/gin"
)

type ServerConfig struct {
	Addr  string
	Store *store.Store
	// Token is the bearer token required on /api routes.
	Token string
	// Location is used for date-only input and the default budget month.
	Location *time.Location
	Now      func() time.Time
}

type Server struct {
	cfg    ServerConfig
	engine *gin.Engine
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Store == nil {
		return nil, errors.New("web: store is nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("web: API token is empty")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Server{cfg: cfg}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api", bearerAuth(s.cfg.Token))
	{
		api.GET("/todos", s.handleTodosList)
		api.POST("/todos", s.handleTodoCreate)
		api.GET("/todos/stats", s.handleTodoStats)
		api.GET("/todos.ics", s.handleTodosICS)
		api.GET("/todos/:id", s.handleTodoGet)
		api.GET("/todos/:id/description", s.handleTodoDescription)
		api.PATCH("/todos/:id", s.handleTodoPatch)
		api.POST("/todos/:id/toggle", s.handleTodoToggle)
		api.DELETE("/todos/:id", s.handleTodoDelete)

		api.GET("/expenses", s.handleExpensesList)
		api.POST("/expenses", s.handleExpenseCreate)
		api.GET("/expenses.csv", s.handleExpensesCSV)
		api.PATCH("/expenses/:id", s.handleExpensePatch)
		api.DELETE("/expenses/:id", s.handleExpenseDelete)
		api.GET("/budgets", s.handleBudgetsList)
		api.PUT("/budgets/:category", s.handleBudgetPut)

		api.GET("/events", s.handleEvents)
	}
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		applog.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		applog.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"dur", time.Since(start).Round(time.Microsecond),
		)
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/components/palette"
	"github.com/goliatone/go-formbuilder/internal/auth"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/service"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// AssetsPath serves the stylesheet linked from public form pages.
const AssetsPath = "/assets"

// Deps are the collaborators the HTTP layer dispatches to.
type Deps struct {
	Forms     *service.Forms
	Public    *service.Public
	Designer  *service.Designer
	Tokens    *auth.Tokens
	Renderers *render.Registry
	Logger    *zap.Logger
	// Mode is the gin mode; empty keeps the current global mode.
	Mode string
}

// Server owns the gin engine and the handlers.
type Server struct {
	deps   Deps
	logger *zap.Logger
	engine *gin.Engine
}

func New(deps Deps) (*Server, error) {
	if deps.Forms == nil || deps.Public == nil || deps.Designer == nil {
		return nil, errors.New("server: forms, public and designer services are required")
	}
	if deps.Renderers == nil {
		return nil, errors.New("server: renderer registry is required")
	}
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}

	s := &Server{
		deps:   deps,
		logger: logging.OrNop(deps.Logger),
		engine: gin.New(),
	}
	s.engine.Use(
		gin.Recovery(),
		RequestID(),
		Logger(s.logger),
		CORS(),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".xlsx"})),
		Identity(deps.Tokens),
	)
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// routeMux lets net/http components register read-only routes on the engine.
type routeMux struct {
	routes gin.IRoutes
}

func (m routeMux) Handle(pattern string, handler http.Handler) {
	m.routes.GET(pattern, gin.WrapH(handler))
	m.routes.HEAD(pattern, gin.WrapH(handler))
}

func (s *Server) routes() error {
	s.engine.StaticFS(AssetsPath, http.FS(formbuilder.AssetsFS()))

	component := palette.New(palette.WithRegistry(s.deps.Forms.Registry()))
	if _, err := component.RegisterRoutes(routeMux{routes: s.engine}, BasePath); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	api := s.engine.Group(BasePath)

	forms := api.Group("/forms", RequireUser())
	forms.POST("", s.createForm)
	forms.GET("", s.listForms)
	forms.GET("/stats", s.formStats)
	forms.GET("/:id", s.getForm)
	forms.PUT("/:id/content", s.saveContent)
	forms.POST("/:id/publish", s.publishForm)
	forms.GET("/:id/submissions", s.listSubmissions)
	forms.GET("/:id/submissions.xlsx", s.exportSubmissions)

	forms.POST("/:id/designer", s.openDesigner)
	forms.GET("/:id/designer", s.viewDesigner)
	forms.DELETE("/:id/designer", s.discardDesigner)
	forms.POST("/:id/designer/drop", s.dropElement)
	forms.PATCH("/:id/designer/elements/:elementId", s.updateElement)
	forms.DELETE("/:id/designer/elements/:elementId", s.removeElement)
	forms.PUT("/:id/designer/selection", s.selectElement)
	forms.POST("/:id/designer/save", s.saveDesigner)

	public := api.Group("/public/forms/:shareURL")
	public.GET("", s.openPublicForm)
	public.GET("/html", s.renderPublicForm)
	public.GET("/openapi.json", s.publicContract)
	public.POST("/submissions", s.submitPublicForm)
	return nil
}

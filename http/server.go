package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"museum/entity"
	"museum/tracing"
)

type CatalogProvider interface {
	Catalog(ctx context.Context) (entity.Catalog, error)
}

type CatalogRepository interface {
	Store(ctx context.Context, catalog entity.Catalog) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Server struct {
	addr            string
	e               *echo.Echo
	eventBus        EventPublisher
	catalogProvider CatalogProvider
	catalogRepo     CatalogRepository
}

func NewServer(
	addr string,
	eventBus EventPublisher,
	catalogProvider CatalogProvider,
	catalogRepo CatalogRepository,
) *Server {
	e := echoHTTP.NewEcho()
	e.Use(otelecho.Middleware(tracing.ServiceName))

	server := &Server{
		addr:            addr,
		e:               e,
		eventBus:        eventBus,
		catalogProvider: catalogProvider,
		catalogRepo:     catalogRepo,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/catalog", server.GetCatalog)
	e.PUT("/catalog", server.PutCatalog)
	e.POST("/tickets/price", server.PostTicketPrice)
	e.POST("/purchases", server.PostPurchases)

	return server
}

// Handler is used by tests to serve requests without listening.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(context.Background())
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

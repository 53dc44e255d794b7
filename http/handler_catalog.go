package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"museum/entity"
)

func (s *Server) GetCatalog(c echo.Context) error {
	catalog, err := s.currentCatalog(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, catalog)
}

func (s *Server) PutCatalog(c echo.Context) error {
	var catalog entity.Catalog
	if err := c.Bind(&catalog); err != nil {
		return err
	}

	err := s.catalogRepo.Store(c.Request().Context(), catalog)
	if errors.Is(err, entity.ErrInvalidCatalog) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) currentCatalog(ctx context.Context) (entity.Catalog, error) {
	catalog, err := s.catalogProvider.Catalog(ctx)
	if errors.Is(err, entity.ErrNotFound) {
		return entity.Catalog{}, echo.NewHTTPError(http.StatusNotFound, "catalog is not loaded")
	}
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("failed to get catalog: %w", err)
	}
	return catalog, nil
}

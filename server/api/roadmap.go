// Package api
package api

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/labstack/echo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sobatoken/burn-backend/types"
)

//go:embed roadmap.yaml
var roadmapDocument []byte

func loadRoadmap(doc []byte) (*types.RoadmapProgress, error) {
	var progress types.RoadmapProgress
	if err := yaml.Unmarshal(doc, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Server) RoadmapProgress(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "RoadmapProgress"))
	progress, err := loadRoadmap(roadmapDocument)
	if err != nil {
		lgr.Error("cannot parse roadmap", zap.Error(err))
		return s.errorResponse(c, http.StatusInternalServerError, ErrRoadmap, err)
	}
	progress.LastUpdate = s.now().UTC().Format(time.RFC3339)
	lgr.Debug("roadmap progress", zap.Int("currentPhase", progress.CurrentPhase))
	return c.JSON(http.StatusOK, progress)
}

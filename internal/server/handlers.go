package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mizutanik/promptpulse/internal/usage"
)

// UsageResponse is the /api/usage payload.
type UsageResponse struct {
	Totals   usage.Totals       `json:"totals"`
	Sessions []usage.SessionRow `json:"sessions"`
}

// ScoresResponse is the /api/scores payload.
type ScoresResponse struct {
	Scores []usage.ScoreRow `json:"scores"`
}

func (s *Server) handleUsage(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	totals, err := s.store.TotalStats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	sessions, err := s.store.Sessions(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, UsageResponse{Totals: totals, Sessions: sessions})
}

func (s *Server) handleScores(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	scores, err := s.store.RecentScores(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ScoresResponse{Scores: scores})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

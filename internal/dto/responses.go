package dto

import "github.com/ignatzorin/flood-alert-backend/internal/models"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// FloodReportListResponse is the map list payload.
type FloodReportListResponse []models.FloodReport

// NeighborhoodsResponse lists districts for the filter bar.
type NeighborhoodsResponse struct {
	Neighborhoods []string `json:"neighborhoods"`
}

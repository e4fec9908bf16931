package handlers

import "jubilee/internal/domain"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type RecordsResponse struct {
	Records []domain.ResponseRecord `json:"records"`
}

type GiftsResponse struct {
	Gifts []domain.Gift `json:"gifts"`
}

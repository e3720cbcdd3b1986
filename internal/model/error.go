package model

type ErrorResponse struct {
	Error         string `json:"error"`
	Field         string `json:"field,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

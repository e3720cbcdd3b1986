package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type BackendHealth struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type BackendHealthResponse struct {
	Status  string          `json:"status"`
	Service string          `json:"service"`
	Backend []BackendHealth `json:"backend"`
}

package dto

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

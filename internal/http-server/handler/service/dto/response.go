package dto

type Endpoints struct {
	Health  string `json:"health"`
	Convert string `json:"convert"`
}

type RootResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Endpoints Endpoints `json:"endpoints"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

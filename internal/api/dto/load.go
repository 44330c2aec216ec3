package dto

type LoadRequest struct {
	Load string `json:"load"`
}

type LoadResponse struct {
	Load       string  `json:"load"`
	Multiplier float64 `json:"multiplier"`
}

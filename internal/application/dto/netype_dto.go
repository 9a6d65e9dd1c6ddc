package dto

// NETypeResponse un tipo de entidad nombrada.
type NETypeResponse struct {
	Code           string `json:"code"`
	Label          string `json:"label"`
	Supertype      string `json:"supertype"`
	Underspecified bool   `json:"underspecified"`
}

// NETypeListResponse listado de la taxonomía (filtrado o completo).
type NETypeListResponse struct {
	Items            []NETypeResponse `json:"items"`
	Total            int              `json:"total"`
	TotalNotFiltered int              `json:"total_not_filtered"`
}

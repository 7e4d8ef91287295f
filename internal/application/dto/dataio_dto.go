package dto

// ImportResponse resultado de una importación.
type ImportResponse struct {
	Entity   string `json:"entity"`
	Imported int    `json:"imported"`
}

// ValidationErrorResponse errores por fila de una importación rechazada (422).
type ValidationErrorResponse struct {
	Code   string   `json:"code"`
	Errors []string `json:"errors"`
}

// DatasetListResponse conjuntos exportables.
type DatasetListResponse struct {
	Datasets []string `json:"datasets"`
	Formats  []string `json:"formats"`
}

// LanguageRequest preferencia de idioma (BCP-47).
type LanguageRequest struct {
	Language string `json:"language" validate:"required,bcp47_language_tag"`
}

// LanguageResponse preferencia de idioma vigente.
type LanguageResponse struct {
	Language string `json:"language"`
}

package dto

import "time"

// ModuleItem entrada del menú de navegación.
type ModuleItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// MenuResponse menú visible para el rol. Resolved=false mientras el rol no se conoce.
type MenuResponse struct {
	Resolved bool         `json:"resolved"`
	Role     string       `json:"role,omitempty"`
	Modules  []ModuleItem `json:"modules"`
}

// NavigationEventResponse evento emitido al abrir un módulo.
type NavigationEventResponse struct {
	Module   string    `json:"module"`
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

package entity

import "time"

// Tipos de acción recomendados para la bitácora.
const (
	ActionLogin          = "login"
	ActionViewSales      = "view_sales"
	ActionRunProcess     = "run_process"
	ActionUpdateStock    = "update_stock"
	ActionGenerateReport = "generate_report"
)

// UserAction registro de auditoría de una acción relevante de seguridad.
// Append-only: no existe update ni delete.
type UserAction struct {
	ID        int64
	UserID    int64
	Type      string
	Details   string
	IPAddress string
	CreatedAt time.Time
}

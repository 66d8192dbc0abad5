package entity

import "time"

// Categorías recomendadas de notificación. La columna es un tag libre:
// el almacén no las valida, son política y no estructura.
const (
	CategoryPriceChange = "price_change"
	CategoryStock       = "stock"
	CategoryReturns     = "returns"
	CategorySalesPlan   = "sales_plan"
	CategorySystem      = "system"
)

// Notification notificación dirigida a exactamente un usuario.
// Solo muta por marcado de lectura; se elimina por acción del dueño
// o por la purga de retención (leída Y más vieja que el umbral).
type Notification struct {
	ID        int64
	UserID    int64
	Category  string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

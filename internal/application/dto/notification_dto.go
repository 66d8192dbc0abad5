package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListRequest filtros del listado del usuario autenticado.
type NotificationListRequest struct {
	PageRequest
	Category string `query:"category"`
	IsRead   *bool  `query:"is_read"`
}

// NotificationListResponse página + total del conjunto filtrado.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// CreateNotificationRequest creación dirigida a un usuario (solo admin).
type CreateNotificationRequest struct {
	UserID   int64  `json:"user_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// CreateForRoleRequest fan-out a todos los usuarios activos de un rol (solo admin).
type CreateForRoleRequest struct {
	Role     string `json:"role"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// CreatedForRoleResponse resultado del fan-out.
type CreatedForRoleResponse struct {
	Success      bool `json:"success"`
	CreatedCount int  `json:"created_count"`
}

// MarkAllReadResponse resultado del marcado masivo.
type MarkAllReadResponse struct {
	Success     bool  `json:"success"`
	MarkedCount int64 `json:"marked_count"`
}

// seed crea el usuario administrador inicial y su notificación de bienvenida.
// Pensado para el primer arranque de un entorno nuevo.
//
// Uso: go run ./cmd/seed -telegram-id 123456789 [-username admin] [-name "Administrador"]
// La conexión a la base se toma de la misma configuración que cmd/api.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/miniapp-api/pkg/config"
)

func main() {
	telegramID := flag.String("telegram-id", "", "Telegram ID del administrador inicial (requerido)")
	username := flag.String("username", "admin", "username de Telegram del administrador")
	fullName := flag.String("name", "Administrador", "nombre a mostrar")
	flag.Parse()

	if *telegramID == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -telegram-id <id> [-username admin] [-name \"Administrador\"]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	admin, err := userRepo.CreateOrGet(ctx, &entity.User{
		TelegramID: *telegramID,
		Username:   *username,
		FullName:   *fullName,
		Role:       entity.RoleAdmin,
		IsActive:   true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear administrador: %v\n", err)
		os.Exit(1)
	}

	// Si el usuario ya existía con otro rol, se promueve a admin.
	if admin.Role != entity.RoleAdmin || !admin.IsActive {
		admin.Role = entity.RoleAdmin
		admin.IsActive = true
		if err := userRepo.Update(ctx, admin); err != nil {
			fmt.Fprintf(os.Stderr, "promover administrador: %v\n", err)
			os.Exit(1)
		}
	}

	welcome := &entity.Notification{
		UserID:   admin.ID,
		Category: entity.CategorySystem,
		Title:    "Bienvenido",
		Message:  "Tu cuenta de administrador está lista. Desde aquí recibirás las novedades del sistema.",
	}
	if err := notificationRepo.Create(ctx, welcome); err != nil {
		fmt.Fprintf(os.Stderr, "crear notificación de bienvenida: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("administrador listo: id=%d telegram_id=%s\n", admin.ID, admin.TelegramID)
}

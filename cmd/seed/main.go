package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/terrasapp/sales-api/config"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/helpers"
)

// Seeds the first active account so the protected routes can be reached on a
// fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	name := "Administrador"
	mail := "admin@terrasapp.com.br"
	login := "admin"
	password := "admin123"
	now := helpers.FormatDatabaseDatetime(time.Now())

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (name, mail, login, password, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (login) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING user_id
	`, name, mail, login, password, entity.StatusActive, now).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d login=%s password=%s\n", id, login, password)
}

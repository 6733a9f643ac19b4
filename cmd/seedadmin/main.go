// cmd/seedadmin/main.go — crea/actualiza una cuenta admin aprobada.
// Uso: go run cmd/seedadmin/main.go [email] [password]
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"cafemanagement/internal/config"
	"cafemanagement/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	email := "admin@cafe.local"
	password := "admin123"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	result := db.Exec(`
		INSERT INTO users (username, name, email, password_hash, role, approval_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'admin', 'approved', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = excluded.password_hash,
		    role = 'admin',
		    approval_status = 'approved'
	`, email, "Admin", email, string(hash))

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("admin '%s' creado/actualizado\n", email)
}

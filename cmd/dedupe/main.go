// cmd/dedupe/main.go — herramienta de migración: elimina productos con
// nombre duplicado en bases creadas antes del índice único (conserva el id
// más bajo por nombre). Las bases nuevas nunca lo necesitan.
package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafemanagement/internal/config"
	"cafemanagement/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Opens the raw file without running the schema migration: on a database
	// with duplicates the unique index cannot be created until they are gone.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	removed, err := repository.NewProductRepository(db).RemoveDuplicateNames(context.Background())
	if err != nil {
		log.Fatalf("dedupe error: %v", err)
	}
	fmt.Printf("%d productos duplicados eliminados\n", removed)
}

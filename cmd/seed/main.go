package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/screenlog/movie-catalog-api/config"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@screenlog.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, hashed_password, first_name, last_name, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, "Demo", "User").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	movies := []struct {
		title       string
		description string
		duration    int
		releaseDate string
	}{
		{"The Long Night", "A detective chases a case that refuses to close.", 128, "2019-10-04"},
		{"Paper Cities", "Two strangers rebuild a town nobody remembers.", 104, "2021-03-19"},
		{"Orbit Decay", "A salvage crew finds more than wreckage in orbit.", 116, "2023-07-28"},
	}
	for _, m := range movies {
		var movieID string
		err := db.QueryRow(`
			INSERT INTO movies (title, description, duration, release_date, owner_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (title, release_date) DO UPDATE SET updated_at = now()
			RETURNING id
		`, m.title, m.description, m.duration, m.releaseDate, userID).Scan(&movieID)
		if err != nil {
			log.Fatalf("failed to seed movie %q: %v", m.title, err)
		}
		fmt.Printf("seeded movie: id=%s title=%q\n", movieID, m.title)
	}
}

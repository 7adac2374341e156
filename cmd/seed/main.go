// seed inserts a demo user and a spread of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/akylbekov/task-tracker/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedName     = "Demo User"
	seedEmail    = "demo@test.local"
	seedPassword = "demo-password"
)

type taskSpec struct {
	title       string
	description string
	status      string
	priority    string
}

var tasks = []taskSpec{
	{"Buy milk", "2% or oat, whichever is cheaper", "pending", "low"},
	{"Renew passport", "Appointment slot opens at 9am", "pending", "high"},
	{"Write weekly report", "", "in_progress", "medium"},
	{"Review pull request", "The pagination refactor", "in_progress", "high"},
	{"Book dentist", "", "pending", "medium"},
	{"Pay electricity bill", "Due on the 28th", "completed", "high"},
	{"Clean the garage", "Before winter", "pending", "low"},
	{"Prepare demo for Friday", "Cover the filtering flow", "in_progress", "high"},
	{"Cancel unused subscription", "", "completed", "low"},
	{"Plan vacation", "Compare flights first", "pending", "medium"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Reset the demo user's tasks so re-runs stay deterministic
	if _, err := pool.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		log.Fatalf("clear tasks: %v", err)
	}

	for _, spec := range tasks {
		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, status, priority)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, spec.title, spec.description, spec.status, spec.priority,
		)
		if err != nil {
			log.Fatalf("insert task %q: %v", spec.title, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s\n", seedEmail)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Password: %s\n", seedPassword)
	fmt.Printf("  Tasks:    %d\n", len(tasks))
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list tasks with the returned token:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s 'http://localhost:8080/tasks?status=pending' -H \"Authorization: Bearer $JWT\"")
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			tables := []string{
				"notifications", "task_attachments", "task_comments", "tasks",
				"pages", "projects", "team_members", "teams", "users",
			}
			for _, t := range tables {
				if _, err := db.Exec("TRUNCATE TABLE " + t + " RESTART IDENTITY CASCADE"); err != nil {
					log.Fatalf("failed to clear table %s: %v", t, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"dika@taskhub.dev", "Dika Admin", "admin"},
			{"sari@taskhub.dev", "Sari", "member"},
			{"bayu@taskhub.dev", "Bayu", "member"},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO users (email, username, full_name, password_hash, role, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, true, now(), now())",
				u.Email, u.Name, u.Name, string(hash), u.Role)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		var adminID int64
		if err := db.QueryRow("SELECT id FROM users WHERE email = $1", users[0].Email).Scan(&adminID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		var teamID int64
		err = db.QueryRow("SELECT id FROM teams WHERE name = $1", "Platform").Scan(&teamID)
		if err != nil {
			if err := db.QueryRow(
				"INSERT INTO teams (name, description, owner_id, created_at, updated_at) VALUES ($1, $2, $3, now(), now()) RETURNING id",
				"Platform", "Platform engineering team", adminID).Scan(&teamID); err != nil {
				log.Fatalf("failed to insert team: %v", err)
			}
			fmt.Println("Seeded team: Platform")
		}

		for _, u := range users {
			var userID int64
			if err := db.QueryRow("SELECT id FROM users WHERE email = $1", u.Email).Scan(&userID); err != nil {
				log.Fatalf("failed to lookup user id for %s: %v", u.Email, err)
			}
			role := "member"
			if userID == adminID {
				role = "owner"
			}
			var exists int
			if err := db.QueryRow("SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2", teamID, userID).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO team_members (team_id, user_id, role, created_at) VALUES ($1, $2, $3, now())",
				teamID, userID, role); err != nil {
				log.Fatalf("failed to add team member %s: %v", u.Email, err)
			}
		}

		var projectID int64
		err = db.QueryRow("SELECT id FROM projects WHERE team_id = $1 AND name = $2", teamID, "Launch").Scan(&projectID)
		if err != nil {
			if err := db.QueryRow(
				"INSERT INTO projects (team_id, name, description, status, created_by, created_at, updated_at) VALUES ($1, $2, $3, 'active', $4, now(), now()) RETURNING id",
				teamID, "Launch", "Initial product launch", adminID).Scan(&projectID); err != nil {
				log.Fatalf("failed to insert project: %v", err)
			}
			fmt.Println("Seeded project: Launch")
		}

		tasks := []struct {
			Title    string
			Status   string
			Priority string
		}{
			{"Set up CI pipeline", "done", "high"},
			{"Write onboarding doc", "in_progress", "medium"},
			{"Design landing page", "todo", "low"},
		}
		for _, t := range tasks {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM tasks WHERE project_id = $1 AND title = $2", projectID, t.Title).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO tasks (project_id, title, description, status, priority, created_by, created_at, updated_at) VALUES ($1, $2, '', $3, $4, $5, now(), now())",
				projectID, t.Title, t.Status, t.Priority, adminID); err != nil {
				log.Fatalf("failed to insert task %s: %v", t.Title, err)
			}
			fmt.Printf("Seeded task: %s\n", t.Title)
		}

		fmt.Println("Seeding completed")
	},
}

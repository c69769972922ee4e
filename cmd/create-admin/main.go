// Command create-admin generates an admin account with random credentials and prints them once.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Mitrevichin/Job-Tracking-App/internal/app"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

const attempts = 5

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer stores.Close(ctx)

	password := generateRandomString(8)

	// retry on the unlikely email collision
	var admin *model.User
	for i := 0; i < attempts; i++ {
		email := "admin_" + generateRandomString(4) + "@jobtracker.local"
		admin, err = auth.NewUser(model.EditableUserInfo{Name: "Admin", LastName: "Admin", Email: email}, password, model.RoleAdmin)
		if err != nil {
			log.Fatal("failed to hash password: ", err)
		}
		err = stores.Users.Create(ctx, admin)
		if !errors.Is(err, store.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}

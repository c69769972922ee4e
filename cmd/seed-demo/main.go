// Command seed-demo creates the read-only demo account when it doesn't exist yet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Mitrevichin/Job-Tracking-App/internal/app"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

func main() {
	email := flag.String("email", "test@test.com", "email of the demo account")
	password := flag.String("password", os.Getenv("DEMO_PASSWORD"), "password of the demo account, defaults to $DEMO_PASSWORD")
	flag.Parse()

	if len(*password) < 8 {
		log.Fatal("demo password must be at least 8 characters")
	}

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

	existing, err := stores.Users.FindByEmail(ctx, auth.NormalizeEmail(*email))
	switch {
	case err == nil && existing.IsDemo:
		fmt.Printf("Demo account %s already exists\n", existing.Email)
		return
	case err == nil:
		log.Fatalf("%s belongs to a regular account", existing.Email)
	case !errors.Is(err, store.ErrNotFound):
		log.Fatalf("failed to look up demo account: %v", err)
	}

	demo, err := auth.NewUser(model.EditableUserInfo{Name: "Demo", LastName: "User", Email: *email}, *password, model.RoleUser)
	if err != nil {
		log.Fatal(err)
	}
	demo.IsDemo = true
	if err := stores.Users.Create(ctx, demo); err != nil {
		log.Fatalf("failed to create demo account: %v", err)
	}
	fmt.Printf("Demo account %s created\n", demo.Email)
}

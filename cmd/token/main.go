// Command token issues a bearer token for calling the API in development. It signs
// with JWT_SECRET_KEY and expires after JWT_EXPIRATION_HOURS.
package main

import (
	"flag"
	"fmt"
	"log"

	"recurring-detector/pkg/auth"
	"recurring-detector/pkg/config"

	"github.com/google/uuid"
)

func main() {
	userFlag := flag.String("user", "", "user ID the token is issued for")
	username := flag.String("name", "dev", "username claim")
	email := flag.String("email", "", "email claim")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("Invalid -user %q: %v", *userFlag, err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	token, err := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration).
		GenerateToken(userID.String(), *username, *email)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}

// Command devtoken mints a bearer token for exercising the protected routes
// locally, e.g.:
//
//	go run ./cmd/devtoken -account 6f1c... | xargs -I{} curl -H "Authorization: Bearer {}" ...
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/example/eatery/internal/config"
	"github.com/example/eatery/internal/utils"
)

func main() {
	account := flag.String("account", "", "account UUID to embed (random when empty)")
	flag.Parse()

	cfg := config.Load()

	accountID := uuid.New()
	if *account != "" {
		parsed, err := uuid.Parse(*account)
		if err != nil {
			log.Fatalf("invalid account id: %v", err)
		}
		accountID = parsed
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, accountID, cfg.TokenExpires)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(token)
}

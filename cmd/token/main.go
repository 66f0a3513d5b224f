// Command token prints a signed bearer token for local testing of the
// protected routes.
package main

import (
	"flag"
	"fmt"
	"log"

	"salon-api/internal/auth"
	"salon-api/internal/config"
)

func main() {
	subject := flag.String("sub", "dev", "token subject")
	givenName := flag.String("given-name", "", "given_name claim")
	familyName := flag.String("family-name", "", "family_name claim")
	email := flag.String("email", "", "email claim")
	level := flag.Int64("level", int64(auth.PermRead|auth.PermCreate|auth.PermUpdate|auth.PermDelete), "x_permission_level bitmask, -1 for all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	manager := &auth.Manager{
		Secret:    []byte(cfg.AccessTokenSecret),
		AccessTTL: cfg.AccessTTL(),
		Issuer:    cfg.TokenIssuer,
	}
	token, err := manager.NewAccessToken(auth.User{
		Username:        *subject,
		FirstName:       *givenName,
		LastName:        *familyName,
		Email:           *email,
		PermissionLevel: auth.Permission(*level),
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}

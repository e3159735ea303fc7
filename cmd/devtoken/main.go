// Package main mints a bearer token for local development, signed with the
// same JWT settings the server reads from the environment.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"enrolsight/internal/access"
	jwttoken "enrolsight/internal/jwt_token"
	"enrolsight/internal/platform/config"
	id "enrolsight/pkg/domain"
)

func main() {
	var (
		role   string
		name   string
		userID string
		ttl    time.Duration
	)
	flag.StringVar(&role, "role", string(access.RoleAnalyst), "role claim (User, Analyst, Manager, Admin)")
	flag.StringVar(&name, "name", "Local Developer", "display name claim")
	flag.StringVar(&userID, "user", "", "user id (default: random)")
	flag.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	uid := id.UserID(uuid.New())
	if userID != "" {
		if uid, err = id.ParseUserID(userID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	svc := jwttoken.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := svc.GenerateAccessToken(uid, name, string(access.ParseRole(role)), ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

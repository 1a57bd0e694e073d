// Command mint-token prints an access token for a user, for deployments
// running with auth.mode=token.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/domain"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	user := pflag.String("user", "", "user id to put in the token")
	name := pflag.String("name", "", "display name (defaults to the user id)")
	secret := pflag.String("secret", os.Getenv("MEETCHAT_AUTH_JWT_SECRET"), "HMAC secret, same as auth.jwt_secret")
	ttl := pflag.Duration("ttl", 24*time.Hour, "token lifetime")
	pflag.Parse()

	if *secret == "" {
		log.Fatal().Msg("--secret or MEETCHAT_AUTH_JWT_SECRET is required")
	}
	id, err := domain.NewIdentity(*user, *name)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid identity")
	}

	token, err := auth.NewJWTManager(*secret, *ttl).GenerateAccessToken(id)
	if err != nil {
		log.Fatal().Err(err).Msg("sign token")
	}
	fmt.Println(token)
}

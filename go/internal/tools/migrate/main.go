// Command migrate applies the embedded schema migrations to the database
// described by the DB_* environment.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/salon/go/internal/database"
	"github.com/mcdev12/salon/go/internal/dbconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	start := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	dbCfg := dbconfig.NewConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	res, err := database.Migrate(dbCfg.DSN(), database.Direction(*direction), *steps)
	if err != nil {
		log.Fatal().Err(err).Str("database", dbCfg.Database).Msg("migration failed")
	}

	elapsed := time.Since(start)
	if res.NoChange {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
	} else {
		fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, res.Version, res.Dirty, elapsed)
	}
}

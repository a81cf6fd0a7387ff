package main

import (
	"github.com/rs/zerolog/log"

	"github.com/mitranim/sqlq/cmd/sqlq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

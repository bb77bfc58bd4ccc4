package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/api/handlers"
	"github.com/intelfusion/case-similarity-api/config"
)

func main() {
	// local development convenience, ignored when no .env file exists
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("case-similarity-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}

package main

import (
	"os"

	"payme/api/internal/app"
	"payme/api/internal/config"
	"payme/api/internal/infra/postgres"
	"payme/api/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(os.Getenv("ENVPATH"))
	if err != nil {
		panic("Can't load .env file: " + err.Error())
	}

	config := config.ReadConfig()
	config.DB = postgres.Init(config)

	log := logger.Init(config)

	app := &app.App{
		Config: config,
		Db:     config.DB,
		Log:    log,
	}

	app.Start()
}

package main

import (
	"github.com/joho/godotenv"

	"github.com/AndrewBazen/django-schema-viewer/cmd"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()
	cmd.Execute(version)
}

package main

import "toolhub_backend/internal/app"

func main() {
	app.Run()
}

package main

import "estate_backend/internal/app"

func main() {
	app.Run()
}

// @title Wedding Planner API
// @version 1.0
// @description Events, guests, budgets, vendors and bookings for wedding planning.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"os"

	_ "weddingplanner/docs"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

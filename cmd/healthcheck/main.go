package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Leonn190/Roll/internal/config"
	"github.com/Leonn190/Roll/internal/constants"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		os.Exit(1)
	}
	port := env.Port
	if port == "" {
		port = "8080"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://127.0.0.1:" + port + constants.RouteAPIPrefix + constants.RouteVersion)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/joho/godotenv"

	"github.com/ncecere/prompt-gateway/smoketest"
)

func main() {
	baseURL := flag.String("url", smoketest.DefaultBaseURL, "gateway base URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	envFile := flag.String("env-file", ".env", "dotenv file to load if present")
	flag.Parse()

	log.SetHandler(text.New(os.Stderr))
	_ = godotenv.Load(*envFile)

	if err := smoketest.CheckAPIKey(os.Getenv("OPENAI_API_KEY")); err != nil {
		log.WithError(err).Fatal("smoketest.api_key")
	}

	fmt.Println("Prompt gateway smoke test")
	fmt.Println("========================================")

	runner := &smoketest.Runner{BaseURL: *baseURL, Timeout: *timeout}
	results := runner.Run(smoketest.DefaultCases())

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Printf("%-16s %s (status %d) %s\n", r.Case+":", status, r.Status, r.Detail)
	}

	fmt.Println("========================================")
	if !smoketest.AllPassed(results) {
		fmt.Println("Some tests failed. Check the details above.")
		os.Exit(1)
	}
	fmt.Println("All tests passed.")
}

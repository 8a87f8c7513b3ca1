// README: Command-line trip query parser; runs Gemini when GEMINI_API_KEY is set, rules otherwise.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"ridecompare/internal/ai"
	"ridecompare/internal/logger"
	"ridecompare/internal/modules/location"
)

func main() {
	at := flag.String("at", "", "current location as lat,lng (default: city centre)")
	flag.Parse()

	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	query := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(query) == "" {
		query = "cheapest ride from Koramangala to Indiranagar via MG Road"
	}

	here := location.Default
	if *at != "" {
		p, ok := location.ParsePoint(*at)
		if !ok {
			logger.Fatal("invalid -at, want lat,lng", zap.String("at", *at))
		}
		here = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var parser ai.TripParser = ai.RuleParser{}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, apiKey)
		if err != nil {
			logger.Fatal("gemini init failed", zap.Error(err))
		}
		defer gemini.Close()
		parser = ai.FallbackParser{Primary: gemini, Secondary: ai.RuleParser{}}
	}

	hints := map[string]string{
		"current_time":  time.Now().Format(time.RFC3339),
		"user_location": here.String(),
	}

	fmt.Printf("Query: %s\n", query)
	result, err := parser.ParseTripQuery(ctx, query, hints)
	if err != nil {
		logger.Fatal("parse failed", zap.Error(err))
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if !result.Complete() {
		fmt.Println("(incomplete: no destination recognised)")
	}
}

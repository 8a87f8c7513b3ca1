// README: Smoke cases for fares, comparison, routes and polyline decoding, plus DB, Redis and load checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ridecompare/internal/infra"
	"ridecompare/migrations"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// bodyCheck inspects a decoded JSON response body.
type bodyCheck func(body map[string]any) error

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.cfg.DSN == "" {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				version, err := infra.Migrate(r.cfg.DSN)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("version=%d", version)}
			},
		},
		{
			Name: "Migration: tariff tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables()
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass, Note: strings.Join(tables, ",")}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, fieldEquals("status", "ok")),

		// Fares
		httpCase("Fare: UberGo 5.2 km", base+"/api/fares/estimate", map[string]any{
			"ride_type":   "UberGo",
			"distance_km": 5.2,
		}, http.StatusOK, fieldEquals("price", float64(87))),
		httpCase("Fare: UberGo 5.2 km discounted", base+"/api/fares/estimate", map[string]any{
			"ride_type":      "UberGo",
			"distance_km":    5.2,
			"apply_discount": true,
		}, http.StatusOK, fieldEquals("original_price", float64(87))),
		httpCase("Fare: Ola Prime 10 km medium surge", base+"/api/fares/estimate", map[string]any{
			"ride_type":   "Ola Prime",
			"distance_km": 10,
			"surge_level": "medium",
		}, http.StatusOK, fieldEquals("price", float64(273))),
		httpCase("Fare: negative distance -> 400", base+"/api/fares/estimate", map[string]any{
			"ride_type":   "UberGo",
			"distance_km": -1,
		}, http.StatusBadRequest, nil),
		httpCaseMethod("Fare: tariff table", http.MethodGet, base+"/api/fares/tariffs", nil, http.StatusOK, fieldLen("tariffs", 9)),
		httpCaseMethod("Fare: surge forecast", http.MethodGet, base+"/api/fares/forecast", nil, http.StatusOK, fieldLen("points", 12)),

		// Comparison
		httpCaseMethod("Compare: default distance", http.MethodGet, base+"/api/rides/compare", nil, http.StatusOK, fieldLen("options", 6)),
		httpCaseMethod("Compare: rapido only", http.MethodGet, base+"/api/rides/compare?distance=3&providers=rapido", nil, http.StatusOK, fieldLen("options", 1)),
		httpCaseMethod("Compare: unknown sort -> 400", http.MethodGet, base+"/api/rides/compare?sort=rating", nil, http.StatusBadRequest, nil),

		// Routes
		httpCase("Polyline: canonical decode", base+"/api/routes/decode", map[string]any{
			"polyline": "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		}, http.StatusOK, fieldEquals("count", float64(3))),
		httpCase("Polyline: truncated -> 422", base+"/api/routes/decode", map[string]any{
			"polyline": "_p~iF",
		}, http.StatusUnprocessableEntity, nil),
		httpCaseMethod("Route: missing destination -> 400", http.MethodGet, base+"/api/routes?origin=Koramangala", nil, http.StatusBadRequest, nil),
		{
			Name: "Route: cached after lookup",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				url := base + "/api/routes?origin=Koramangala&destination=Indiranagar"
				body, _, err := r.getJSON(ctx, url)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if body["source"] == "simulated" || body["source"] == "straight_line" {
					return Result{Status: StatusSkip, Note: "directions disabled on server"}
				}
				start := time.Now()
				body, _, err = r.getJSON(ctx, url)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if body["source"] != "cache" {
					return Result{Status: StatusFail, Note: fmt.Sprintf("source=%v", body["source"])}
				}
				keys, err := r.redis.Keys(ctx, "route:v1:*").Result()
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Latency: time.Since(start), Note: fmt.Sprintf("keys=%d", len(keys))}
			},
		},

		{
			Name: "Perf: compare under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/rides/compare?distance=8&sort=time")
			},
		},
	}
}

func httpCase(name, url string, body any, okStatus int, check bodyCheck) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatus, check)
}

func httpCaseMethod(name, method, url string, body any, okStatus int, check bodyCheck) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != okStatus {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want %d", resp.StatusCode, okStatus)}
			}
			if check != nil {
				var decoded map[string]any
				if err := json.Unmarshal(raw, &decoded); err != nil {
					return Result{Status: StatusFail, Latency: latency, Note: "invalid json: " + err.Error()}
				}
				if err := check(decoded); err != nil {
					return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
				}
			}
			return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func (r *Runner) getJSON(ctx context.Context, url string) (map[string]any, int, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, resp.StatusCode, err
	}
	return out, resp.StatusCode, nil
}

func fieldEquals(key string, want any) bodyCheck {
	return func(body map[string]any) error {
		if got := body[key]; got != want {
			return fmt.Errorf("%s=%v want %v", key, got, want)
		}
		return nil
	}
}

func fieldLen(key string, want int) bodyCheck {
	return func(body map[string]any) error {
		list, ok := body[key].([]any)
		if !ok {
			return fmt.Errorf("%s is not a list", key)
		}
		if len(list) != want {
			return fmt.Errorf("len(%s)=%d want %d", key, len(list), want)
		}
		return nil
	}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				resp, err := r.httpc.Do(req)
				if err != nil || resp.StatusCode != http.StatusOK {
					if resp != nil {
						resp.Body.Close()
					}
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables() ([]string, error) {
	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	var tables []string
	for _, f := range files {
		b, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			return nil, err
		}
		for _, m := range re.FindAllStringSubmatch(string(b), -1) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}

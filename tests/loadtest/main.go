package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
)

var rarities = []string{"all", "normal", "foil", "holo", "gold", "prismatic"}
var sortKeys = []string{"newest", "oldest", "rarity", "rating", "name"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== CSC Trading Cards Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Open packs to seed collections
	fmt.Println("\n--- Phase 1: Seeding collections (POST /packs/open) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doOpenPack(rng)
	})

	// Phase 2: Mixed load
	fmt.Println("\n--- Phase 2: Mixed load (40% open, 60% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doOpenPack(rng)
		case r < 0.55:
			return doGetCollection(rng)
		case r < 0.70:
			return doGetView(rng)
		case r < 0.80:
			return doGetStats(rng)
		case r < 0.90:
			return doGetTradeable(rng)
		default:
			return doGetPlayers()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (5% open, 95% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doOpenPack(rng)
		case r < 0.30:
			return doGetCollection(rng)
		case r < 0.60:
			return doGetView(rng)
		case r < 0.75:
			return doGetStats(rng)
		case r < 0.90:
			return doGetTradeable(rng)
		default:
			return doGetPlayers()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func userId(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers)+1)
}

func doRequest(method, endpoint, url, user string, okStatuses ...int) result {
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("X-User-Id", user)
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := false
	for _, s := range okStatuses {
		if resp.StatusCode == s {
			ok = true
			break
		}
	}
	return result{endpoint, resp.StatusCode, lat, !ok}
}

func doOpenPack(rng *rand.Rand) result {
	// 400 means the user ran out of packs, 429 means the limiter kicked
	// in. Both are expected under sustained load.
	return doRequest(http.MethodPost, "POST /packs/open", baseURL+"/packs/open", userId(rng), 200, 400, 429)
}

func doGetCollection(rng *rand.Rand) result {
	return doRequest(http.MethodGet, "GET /collection", baseURL+"/collection", userId(rng), 200)
}

func doGetView(rng *rand.Rand) result {
	params := []string{
		"rarity=" + rarities[rng.Intn(len(rarities))],
		"sort=" + sortKeys[rng.Intn(len(sortKeys))],
		fmt.Sprintf("page=%d", rng.Intn(3)+1),
		"perPage=20",
	}
	url := baseURL + "/collection/view?" + strings.Join(params, "&")
	return doRequest(http.MethodGet, "GET /collection/view", url, userId(rng), 200)
}

func doGetStats(rng *rand.Rand) result {
	return doRequest(http.MethodGet, "GET /collection/stats", baseURL+"/collection/stats", userId(rng), 200)
}

func doGetTradeable(rng *rand.Rand) result {
	return doRequest(http.MethodGet, "GET /packs/tradeable", baseURL+"/packs/tradeable", userId(rng), 200)
}

func doGetPlayers() result {
	return doRequest(http.MethodGet, "GET /players", baseURL+"/players", "loadtest", 200)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

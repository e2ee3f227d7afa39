package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

// Mix of current, outdated and unparseable versions as seen in the wild.
var versions = []string{"2.4.1", "2.3.0", "2.0.4", "1.16.3", "1.12.0", "2.4.1-beta", "1.9", "0.0.1"}

var platforms = []string{
	"Linux 5.15.0-91-generic x86_64",
	"Darwin 23.1.0 arm64",
	"Linux 4.19.0-25-amd64 x86_64",
}

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
	fmt.Println("=== vcheck Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Versions: %d\n\n", numWorkers, testDuration, len(versions))

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

	// Phase 1: version checks only
	fmt.Println("\n--- Phase 1: Version checks (GET /update_for) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doUpdateFor(rng)
	})

	// Phase 2: mixed, the way a fleet of servers behaves
	fmt.Println("\n--- Phase 2: Mixed load (80% update_for, 20% checkin) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.80 {
			return doUpdateFor(rng)
		}
		return doCheckin(rng)
	})

	// Phase 3: checkin heavy, stresses the periodic channel writer
	fmt.Println("\n--- Phase 3: Checkin-heavy load (10% update_for, 90% checkin) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.10 {
			return doUpdateFor(rng)
		}
		return doCheckin(rng)
	})

	fmt.Println()
	doHealth()
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

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

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

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doUpdateFor(rng *rand.Rand) result {
	v := versions[rng.Intn(len(versions))]
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/update_for/"+v, nil)
	req.Header.Set("User-Agent", "rethinkdb/"+v)
	req.Header.Set("Accept-Language", "en-US")
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /update_for", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /update_for", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doCheckin(rng *rand.Rand) result {
	form := url.Values{
		"Version":                 {versions[rng.Intn(len(versions))]},
		"Number-Of-Servers":       {strconv.Itoa(rng.Intn(16) + 1)},
		"Uname":                   {platforms[rng.Intn(len(platforms))]},
		"Cooked-Number-Of-Tables": {strconv.Itoa(rng.Intn(200))},
	}
	if rng.Float64() < 0.5 {
		form.Set("Cooked-Size-Of-Shards", strconv.Itoa(rng.Intn(1<<20)))
	}

	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/checkin", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /checkin", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /checkin", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doHealth() {
	resp, err := httpClient.Get(baseURL + "/health")
	if err != nil {
		fmt.Printf("Health: request failed: %s\n", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Health (%d): %s\n", resp.StatusCode, body)
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

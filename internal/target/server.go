package target

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type ServerConfig struct {
	Port int
}

// Handler serves the sample endpoints used for local probing and tests.
func Handler() http.Handler {
	mux := http.NewServeMux()

	// 1. Steady fast endpoint (5-15ms) - the happy-path probe target
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		jitter := time.Duration(rand.Intn(10)+5) * time.Millisecond
		time.Sleep(jitter)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 2. Slow endpoint (1s-2s) - good for exercising per-request timeouts
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		jitter := time.Duration(rand.Intn(1000)+1000) * time.Millisecond
		time.Sleep(jitter)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("slow response"))
	})

	// 3. Flaky endpoint - random 5xx/429 mixed into 200s
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		rnd := rand.Float32()
		switch {
		case rnd < 0.2:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 Internal Server Error"))
		case rnd < 0.4:
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("429 Too Many Requests"))
		default:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		}
	})

	// 4. Broken endpoint - always 500, drives the error-rate check to fail
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 Internal Server Error"))
	})

	return mux
}

// Start blocks serving the sample target.
func Start(cfg ServerConfig) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("sample target listening on %s (/ok /slow /flaky /broken)\n", addr)
	return http.ListenAndServe(addr, Handler())
}

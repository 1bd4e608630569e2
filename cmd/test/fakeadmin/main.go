package main

import (
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	Port       int `long:"port" description:"Port to serve the fake admin endpoint on (debug feature)"`
	ReadyAfter int `long:"ready-after" description:"Number of /ready requests to fail before reporting ready (debug feature)"`
	ReadyDelay int `long:"ready-delay" description:"Seconds after startup before /ready reports ready (debug feature)"`
}

// Simulates a proxy admin endpoint for manual testing of proxyawait:
// /ready fails until the configured threshold, /shutdown just logs.
func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	var parser = flags.NewParser(&opts, flags.HelpFlag)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		fmt.Printf("Command line flags parsing failed: %v\n", err)
		os.Exit(1)
	}

	if opts.Port == 0 {
		opts.Port = 4191
	}

	fmt.Printf("Running fakeadmin, opts: %+v...\n", opts)

	started := time.Now()
	var readyRequests int32

	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		attempt := atomic.AddInt32(&readyRequests, 1)

		if int(attempt) <= opts.ReadyAfter {
			fmt.Printf("fakeadmin /ready: not ready, attempt: %d\n", attempt)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if elapsed := time.Since(started); elapsed < time.Duration(opts.ReadyDelay)*time.Second {
			fmt.Printf("fakeadmin /ready: not ready, elapsed: %v\n", elapsed)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		fmt.Printf("fakeadmin /ready: ready, attempt: %d\n", attempt)
		w.WriteHeader(http.StatusOK)
	})

	http.HandleFunc("/shutdown", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Printf("fakeadmin /shutdown: shutdown requested\n")
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("localhost:%d", opts.Port)
	fmt.Printf("fakeadmin listening on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("fakeadmin server failed: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
)

type apiResponse struct {
	Response string   `json:"response"`
	Error    string   `json:"error,omitempty"`
	Steps    int      `json:"steps,omitempty"`
	Segments []string `json:"segments,omitempty"`
}

type setRequest struct {
	Value int `json:"value"`
	Range int `json:"range"`
}

// apiHandler serves the bargraph over HTTP. The display is a single shared
// resource, so every handler holds the mutex for its full transaction.
type apiHandler struct {
	rt     *runtimeConfig
	mu     sync.Mutex
	user   string
	realm  string
	secret string
}

func newAPIHandler(rt *runtimeConfig) *apiHandler {
	secret := rt.settings.GetString(sSecret)
	if secret == "" {
		// same trick the config file spares you from: a throwaway
		// secret, printed once at startup
		secret = rt.clock.Now().Format(time.RFC3339Nano)
		log.Printf("generated API secret: %s", secret)
	}
	return &apiHandler{
		rt:     rt,
		user:   "bargraph",
		realm:  "bargraph",
		secret: secret,
	}
}

// BasicAuth - provide a middleware to authenticate users
func (h *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(h.user)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(h.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+h.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	output, _ := json.Marshal(resp)
	w.Write(output)
}

func segmentNames(state []backpack.LedColor) []string {
	names := make([]string, len(state))
	for i, c := range state {
		names[i] = c.String()
	}
	return names
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.rt.display.ReadState()
	if err != nil {
		writeAnswer(w, http.StatusInternalServerError, apiResponse{Response: "BAD", Error: err.Error()})
		return
	}
	writeAnswer(w, http.StatusOK, apiResponse{
		Response: "OK",
		Steps:    h.rt.display.Steps(),
		Segments: segmentNames(state),
	})
}

func (h *apiHandler) apiSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnswer(w, http.StatusBadRequest, apiResponse{Response: "BAD", Error: err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := cmdSet(h.rt, io.Discard, req.Value, req.Range); err != nil {
		writeAnswer(w, http.StatusBadRequest, apiResponse{Response: "BAD", Error: err.Error()})
		return
	}
	writeAnswer(w, http.StatusOK, apiResponse{Response: "OK"})
}

func (h *apiHandler) apiClear(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := cmdClear(h.rt); err != nil {
		writeAnswer(w, http.StatusInternalServerError, apiResponse{Response: "BAD", Error: err.Error()})
		return
	}
	writeAnswer(w, http.StatusOK, apiResponse{Response: "OK"})
}

func (h *apiHandler) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.BasicAuth)
	r.HandleFunc("/api/status", h.apiStatus).Methods("GET")
	r.HandleFunc("/api/set", h.apiSet).Methods("POST")
	r.HandleFunc("/api/clear", h.apiClear).Methods("POST")
	return r
}

// runServe drives the bargraph through an HTTP API until interrupted.
func runServe(rt *runtimeConfig) error {
	handler := newAPIHandler(rt)

	srv := &http.Server{
		Addr:    rt.settings.GetString(sListen),
		Handler: handler.router(),
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("starting bargraph http server on %s", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		log.Printf("got %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

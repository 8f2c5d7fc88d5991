package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"solar_tracker/internal/model"
	"solar_tracker/internal/presets"
	"solar_tracker/internal/sim"
	"solar_tracker/internal/store"
	"solar_tracker/internal/ws"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	presetFile := flag.String("presets", "", "optional YAML preset catalog merged over the built-ins")
	flag.Parse()

	catalog := presets.Builtin()
	if *presetFile != "" {
		var err error
		catalog, err = presets.Load(*presetFile)
		if err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		log.Printf("Loaded %d presets from %s", len(catalog), *presetFile)
	}

	archive := store.New()
	manager := sim.NewManager(archive)
	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)

	startRun := func(preset string, overrides map[string]any) (string, error) {
		cfg, err := buildConfig(catalog, preset, overrides)
		if err != nil {
			return "", err
		}
		id, err := manager.Start(cfg, bridge)
		if err != nil {
			return "", err
		}
		log.Printf("Started run %s (controller=%s, duration=%.0fs)", id, cfg.Controller, cfg.SimulationDuration)
		return id, nil
	}

	currentState := func() ws.StatePayload {
		engine, id, ok := manager.Current()
		if !ok {
			return ws.StatePayload{Status: model.RunIdle}
		}
		return ws.StatePayload{RunID: id, Status: engine.State(), Progress: engine.Progress()}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.Handle("/ws", ws.NewHandler(hub, startRun, currentState))

	mux.HandleFunc("POST /api/simulation/start", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Preset string         `json:"preset"`
			Config map[string]any `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, err := startRun(body.Preset, body.Config)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "started",
			"message": "Simulation started",
			"run_id":  id,
		})
	})

	mux.HandleFunc("GET /api/simulation/status", func(w http.ResponseWriter, r *http.Request) {
		state := currentState()
		writeJSON(w, http.StatusOK, state)
	})

	mux.HandleFunc("GET /api/simulation/results", func(w http.ResponseWriter, r *http.Request) {
		engine, _, ok := manager.Current()
		if !ok || engine.StepCount() == 0 {
			writeError(w, http.StatusNotFound, fmt.Errorf("no results available"))
			return
		}
		n := 100
		if q := r.URL.Query().Get("n"); q != "" {
			parsed, err := strconv.Atoi(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("invalid n: %w", err))
				return
			}
			n = parsed
		}
		writeJSON(w, http.StatusOK, engine.LatestResults(n))
	})

	mux.HandleFunc("GET /api/simulation/summary", func(w http.ResponseWriter, r *http.Request) {
		engine, _, ok := manager.Current()
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("no simulation started"))
			return
		}
		writeJSON(w, http.StatusOK, engine.SummaryStats())
	})

	mux.HandleFunc("GET /api/config/presets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog)
	})

	mux.HandleFunc("GET /api/runs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, archive.List())
	})

	mux.HandleFunc("GET /api/runs/{id}/results.csv", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		results, ok := archive.Results(id, 0)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown run %q", id))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", id))
		if err := model.WriteResultsCSV(w, results); err != nil {
			log.Printf("CSV export for run %s: %v", id, err)
		}
	})

	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

// buildConfig layers a preset (if named) and explicit overrides on the
// defaults.
func buildConfig(catalog presets.Catalog, preset string, overrides map[string]any) (sim.Config, error) {
	cfg := sim.Default()
	if preset != "" {
		p, ok := catalog[preset]
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q", preset)
		}
		if err := cfg.ApplyOverrides(p); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

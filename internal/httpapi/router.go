package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Dogs
	dh := DogsHandler{DB: d.DB, Hub: d.Hub, DeleteDog: d.DeleteDog}
	mux.HandleFunc("/dogs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.List,
	}))
	mux.HandleFunc("/dogs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    dh.GetByPath,    // expects /dogs/{id}
		http.MethodDelete: dh.DeleteByPath, // expects /dogs/{id}
	}))
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Seed,
	}))

	// Matching
	mh := MatchHandler{DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/match", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mh.Match,
	}))

	// Quiz
	qh := QuizHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/quiz/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: qh.GetByPath,
		http.MethodPut: qh.PutByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	// Sync
	syh := SyncHandler{
		DB:          d.DB,
		CfgVal:      d.CfgVal,
		SyncStatus:  d.SyncStatus,
		Hub:         d.Hub,
		RunSyncOnce: d.RunSyncOnce,
	}
	mux.HandleFunc("/sync/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: syh.Status,
	}))
	mux.HandleFunc("/sync/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: syh.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Photos
	ph := PhotosHandler{DB: d.DB}
	mux.HandleFunc("/photo/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.GetByPath,
	}))

	// DB maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dbh.Checkpoint)

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}

package poll

import (
	"context"
	"database/sql"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/emailalert"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/shelterweb"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/util"
)

// PollOnce runs every enabled fetcher concurrently and inserts whatever new
// dogs came back. A single failing fetcher logs and is skipped; the run
// itself still succeeds with partial results.
func PollOnce(db *sql.DB, cfg config.Config, onNewDog func()) (added int, err error) {
	parent := context.Background()

	limiter := util.NewHostLimiter(1.0, 2)

	var fetchers []ingest.Fetcher

	if cfg.Sync.Enabled && len(cfg.Sync.Shelters) > 0 {
		sw := shelterweb.New(shelterweb.Config{Shelters: cfg.Sync.Shelters}, limiter)
		fetchers = append(fetchers, sw)
	}
	if cfg.Email.Enabled {
		fetchers = append(fetchers, &emailalert.Fetcher{Cfg: cfg})
	}

	var g errgroup.Group

	results := make(chan ingest.SyncResult, len(fetchers))

	for _, f := range fetchers {
		f := f

		g.Go(func() error {
			timeout := 2 * time.Minute
			if f.Name() == "shelterweb" {
				timeout = 5 * time.Minute
			}

			fctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			log.Printf("[%s] Running...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[sync:%s] error: %v", f.Name(), err)
				return nil
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	totalAdded := 0

	insertCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for res := range results {
		log.Printf("[poll] got source=%s leads=%d", res.Source, len(res.Leads))
		if len(res.Leads) > 0 {
			totalAdded += ingest.ProcessLeads(insertCtx, db, res.Leads, onNewDog)
		}
	}

	return totalAdded, nil
}

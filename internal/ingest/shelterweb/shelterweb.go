package shelterweb

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/util"
)

// Scraper pulls adoptable-dog listings from shelter sites. It understands
// the common card markup (a container carrying data-dog-id with per-field
// data attributes or labeled child nodes) that the supported shelters use.
type Scraper struct {
	cfg     Config
	limiter *util.HostLimiter
	hc      *http.Client
}

type Config struct {
	Shelters []config.Shelter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		limiter: limiter,
		hc:      &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Scraper) Name() string { return "shelterweb" }

func (s *Scraper) Fetch(ctx context.Context) (ingest.SyncResult, error) {
	var out []ingest.DogLead
	for _, sh := range s.cfg.Shelters {
		leads, err := s.fetchShelter(ctx, sh)
		if err != nil {
			// one shelter being down must not kill the whole run
			log.Printf("[shelterweb] shelter=%s err=%v", sh.Slug, err)
			continue
		}
		out = append(out, leads...)
	}
	return ingest.SyncResult{Source: s.Name(), Leads: out}, nil
}

func (s *Scraper) fetchShelter(ctx context.Context, sh config.Shelter) ([]ingest.DogLead, error) {
	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, sh.URL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sh.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("shelterweb request: %w", err)
	}
	req.Header.Set("User-Agent", "HoomanFinder/1.0 (+local)")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shelterweb get listing: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("shelterweb listing status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("shelterweb parse listing html: %w", err)
	}

	base, _ := url.Parse(sh.URL)
	seen := map[string]bool{}

	var leads []ingest.DogLead
	doc.Find("[data-dog-id], .dog-card, article.pet").Each(func(_ int, card *goquery.Selection) {
		lead := parseCard(card, base)
		if lead.Name == "" {
			return
		}

		dogID, _ := card.Attr("data-dog-id")
		dogID = strings.TrimSpace(dogID)
		if dogID == "" {
			dogID = idFromProfileURL(lead.ProfileURL)
		}
		if dogID == "" {
			return
		}

		sourceID := fmt.Sprintf("shelterweb:%s:%s", sh.Slug, dogID)
		if seen[sourceID] {
			return
		}
		seen[sourceID] = true

		lead.ShelterName = sh.Name
		lead.Source = "shelterweb"
		lead.SourceID = sourceID
		leads = append(leads, lead)
	})

	return leads, nil
}

// parseCard reads one dog card. Data attributes win; labeled child nodes
// are the fallback for shelters with older markup.
func parseCard(card *goquery.Selection, base *url.URL) ingest.DogLead {
	lead := ingest.DogLead{
		Name:    fieldText(card, "name", ".dog-name, h2, h3"),
		Breed:   fieldText(card, "breed", ".breed"),
		Sex:     fieldText(card, "sex", ".sex"),
		AgeText: fieldText(card, "age", ".age"),
		Size:    fieldText(card, "size", ".size"),
		Energy:  fieldText(card, "energy", ".energy"),

		SheddingLevel: fieldText(card, "shedding", ".shedding"),
		BarkingLevel:  fieldText(card, "barking", ".barking"),
		MaxAloneText:  fieldText(card, "max-alone-hours", ".alone"),

		Traits: map[string]string{},
	}

	if raw := fieldText(card, "play-styles", ".play-styles"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = util.CleanText(p); p != "" {
				lead.PlayStyles = append(lead.PlayStyles, p)
			}
		}
	}

	for attr, key := range traitAttrs {
		if v := fieldText(card, attr, ""); v != "" {
			lead.Traits[key] = v
		}
	}

	if href, ok := card.Find("a[href]").First().Attr("href"); ok {
		lead.ProfileURL = absURL(base, href)
	}
	if src, ok := card.Find("img[src]").First().Attr("src"); ok {
		lead.PhotoURL = absURL(base, src)
	}

	return lead
}

var traitAttrs = map[string]string{
	"potty-trained":       "potty_trained",
	"good-with-kids":      "good_with_kids",
	"good-with-cats":      "good_with_cats",
	"good-with-dogs":      "good_with_dogs",
	"good-with-small":     "good_with_small_animals",
	"first-time-friendly": "first_time_friendly",
	"hypoallergenic":      "hypoallergenic",
}

func fieldText(card *goquery.Selection, dataAttr, fallbackSel string) string {
	if dataAttr != "" {
		if v, ok := card.Attr("data-" + dataAttr); ok {
			if v = util.CleanText(v); v != "" {
				return v
			}
		}
	}
	if fallbackSel != "" {
		if v := util.CleanText(card.Find(fallbackSel).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func absURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

func idFromProfileURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}
	if i := strings.LastIndexByte(raw, '/'); i >= 0 {
		return raw[i+1:]
	}
	return ""
}

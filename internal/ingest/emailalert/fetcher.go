package emailalert

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/emersion/go-imap/v2"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/util"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/secrets"
)

// Fetcher reads shelter new-arrival alert emails over IMAP and turns each
// listed dog into a lead.
type Fetcher struct {
	Cfg config.Config
}

func (f *Fetcher) Name() string { return "emailalert" }

func (f *Fetcher) Fetch(ctx context.Context) (ingest.SyncResult, error) {
	res := ingest.SyncResult{Source: f.Name()}

	cfg := f.Cfg
	if !cfg.Email.Enabled {
		return res, nil
	}
	if cfg.Email.IMAPHost == "" || cfg.Email.Username == "" {
		return res, errors.New("email enabled but missing imap_host/username")
	}

	pass, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	if err != nil {
		return res, err
	}

	addr := cfg.Email.IMAPHost
	if cfg.Email.IMAPPort != 0 && !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Email.IMAPPort)
	} else if !strings.Contains(addr, ":") {
		addr = addr + ":993"
	}

	mailbox := cfg.Email.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	c, err := dialAndLogin(ctx, addr, cfg.Email.Username, pass)
	if err != nil {
		return res, err
	}
	defer logoutAndClose(c)

	if _, err := c.Select(mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return res, fmt.Errorf("imap select %q: %w", mailbox, err)
	}

	msgs, err := fetchUnseen(ctx, c, 20)
	if err != nil {
		return res, err
	}
	if len(msgs) == 0 {
		return res, nil
	}

	processed := make([]imap.UID, 0, len(msgs))

	for _, m := range msgs {
		if len(cfg.Email.SearchSubjectAny) > 0 && !containsAnyCI(m.Subject, cfg.Email.SearchSubjectAny) {
			processed = append(processed, m.UID)
			continue
		}

		htmlBody := htmlPart(m.RawMessage)
		if htmlBody == "" {
			processed = append(processed, m.UID)
			continue
		}

		leads, perr := ParseAlertHTML(strings.NewReader(htmlBody), m.From)
		if perr != nil {
			log.Printf("[emailalert] parse uid=%d err=%v", m.UID, perr)
			processed = append(processed, m.UID)
			continue
		}

		res.Leads = append(res.Leads, leads...)
		processed = append(processed, m.UID)
	}

	if err := markSeen(c, processed); err != nil {
		log.Printf("[emailalert] mark seen: %v", err)
	}

	return res, nil
}

// ParseAlertHTML pulls dog entries out of an alert email body. Alert mails
// reuse the same card markup as the shelter listing pages, so the selectors
// match shelterweb's.
func ParseAlertHTML(r *strings.Reader, from string) ([]ingest.DogLead, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	shelter := shelterFromSender(from)

	var leads []ingest.DogLead
	doc.Find("[data-dog-id], .dog-card").Each(func(_ int, card *goquery.Selection) {
		dogID, _ := card.Attr("data-dog-id")
		dogID = util.CleanText(dogID)

		name := util.CleanText(card.AttrOr("data-name", ""))
		if name == "" {
			name = util.CleanText(card.Find(".dog-name, h2, h3").First().Text())
		}
		if name == "" || dogID == "" {
			return
		}

		lead := ingest.DogLead{
			Name:        name,
			Breed:       util.CleanText(card.AttrOr("data-breed", "")),
			Sex:         util.CleanText(card.AttrOr("data-sex", "")),
			AgeText:     util.CleanText(card.AttrOr("data-age", "")),
			Size:        util.CleanText(card.AttrOr("data-size", "")),
			Energy:      util.CleanText(card.AttrOr("data-energy", "")),
			ShelterName: shelter,
			Source:      "emailalert",
			SourceID:    "emailalert:" + shelter + ":" + dogID,
			Traits:      map[string]string{},
		}

		if raw := util.CleanText(card.AttrOr("data-play-styles", "")); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				if p = util.CleanText(p); p != "" {
					lead.PlayStyles = append(lead.PlayStyles, p)
				}
			}
		}

		for attr, key := range alertTraitAttrs {
			if v := util.CleanText(card.AttrOr("data-"+attr, "")); v != "" {
				lead.Traits[key] = v
			}
		}

		if src, ok := card.Find("img[src]").First().Attr("src"); ok {
			lead.PhotoURL = strings.TrimSpace(src)
		}

		leads = append(leads, lead)
	})

	return leads, nil
}

var alertTraitAttrs = map[string]string{
	"potty-trained":       "potty_trained",
	"good-with-kids":      "good_with_kids",
	"good-with-cats":      "good_with_cats",
	"good-with-dogs":      "good_with_dogs",
	"good-with-small":     "good_with_small_animals",
	"first-time-friendly": "first_time_friendly",
	"hypoallergenic":      "hypoallergenic",
}

func shelterFromSender(from string) string {
	from = strings.ToLower(strings.TrimSpace(from))
	if i := strings.IndexByte(from, '@'); i >= 0 {
		from = from[i+1:]
	}
	if i := strings.IndexByte(from, '.'); i >= 0 {
		from = from[:i]
	}
	if from == "" {
		return "unknown"
	}
	return from
}

func containsAnyCI(s string, needles []string) bool {
	ls := strings.ToLower(s)
	for _, n := range needles {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" && strings.Contains(ls, n) {
			return true
		}
	}
	return false
}

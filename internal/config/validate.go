package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy of cfg plus everything a UI
// should show before saving it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Email.SearchSubjectAny = trimList(out.Email.SearchSubjectAny)

	// Fresh map: out must not alias cfg's markers. Markers are stored
	// lowercase because quiz answers are matched lowercased.
	if len(out.Matching.OpenMarkers) > 0 {
		markers := make(map[string][]string, len(out.Matching.OpenMarkers))
		for c, xs := range out.Matching.OpenMarkers {
			ys := trimList(xs)
			for i := range ys {
				ys[i] = strings.ToLower(ys[i])
			}
			markers[c] = ys
		}
		out.Matching.OpenMarkers = markers
	}

	// ---- Validation rules ----

	if out.App.Port != 0 && (out.App.Port < 1 || out.App.Port > 65535) {
		res.addErr("app.port must be 1..65535")
	}

	if out.Polling.SyncSeconds < 0 {
		res.addErr("polling.sync_seconds must be >= 0")
	} else if out.Polling.SyncSeconds > 0 && out.Polling.SyncSeconds < 60 {
		res.addWarn("polling.sync_seconds is very low (%d); shelter pages rarely change that fast.", out.Polling.SyncSeconds)
	}
	if out.Polling.EmailSeconds < 0 {
		res.addErr("polling.email_seconds must be >= 0")
	}

	// The scheme validates itself; surface its complaint verbatim so a typo'd
	// criterion name or negative weight is caught before the config is saved.
	if err := out.Matching.Scheme().Validate(); err != nil {
		res.addErr("matching: %v", err)
	} else if out.Matching.Scheme().TotalWeight() == 0 {
		res.addWarn("matching.weights sum to 0; every dog will score 0%%.")
	}

	if out.Sync.Enabled {
		if len(out.Sync.Shelters) == 0 {
			res.addWarn("sync.enabled is true but sync.shelters is empty; nothing will be fetched.")
		}
		seen := map[string]bool{}
		for i, sh := range out.Sync.Shelters {
			if strings.TrimSpace(sh.Slug) == "" {
				res.addErr("sync.shelters[%d].slug is required", i)
			}
			if strings.TrimSpace(sh.URL) == "" {
				res.addErr("sync.shelters[%d].url is required", i)
			}
			key := strings.ToLower(sh.Slug)
			if key != "" && seen[key] {
				res.addWarn("sync.shelters has duplicate slug %q", sh.Slug)
			}
			seen[key] = true
		}
	}

	// Email required fields when enabled (password lives in the keychain).
	if out.Email.Enabled {
		if strings.TrimSpace(out.Email.IMAPHost) == "" {
			res.addErr("email.imap_host is required when email.enabled=true")
		}
		if out.Email.IMAPPort == 0 {
			res.addErr("email.imap_port is required when email.enabled=true")
		}
		if strings.TrimSpace(out.Email.Username) == "" {
			res.addErr("email.username is required when email.enabled=true")
		}
		if strings.TrimSpace(out.Email.Mailbox) == "" {
			res.addErr("email.mailbox is required when email.enabled=true")
		}
		if len(out.Email.SearchSubjectAny) == 0 {
			res.addWarn("email.search_subject_any is empty; alert polling may find nothing.")
		}
	}

	return out, res
}

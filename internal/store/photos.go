package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

func PhotoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(u))
	return hex.EncodeToString(h[:])
}

// CachePhotoFromURL downloads a shelter photo once and stores the bytes in the
// photos table. Fetch failures return an empty key rather than an error so a
// dead image link never blocks a sync run.
func CachePhotoFromURL(ctx context.Context, db *sql.DB, raw string) (key string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}

	pu, err := url.Parse(raw)
	if err != nil || (pu.Scheme != "http" && pu.Scheme != "https") || pu.Host == "" {
		return "", nil
	}

	key = PhotoKeyFromURL(raw)

	// If already cached, skip fetch
	var exists int
	e := db.QueryRowContext(ctx, `SELECT 1 FROM photos WHERE key = ? LIMIT 1;`, key).Scan(&exists)
	if e == nil {
		return key, nil
	}
	if e != sql.ErrNoRows {
		return "", e
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[photo-cache] fetch error url=%s err=%v", raw, err)
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[photo-cache] non-2xx url=%s status=%s", raw, resp.Status)
		return "", nil
	}

	// Limit size (protect DB)
	const max = 2 * 1024 * 1024 // 2MB
	b, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil {
		return "", nil
	}
	if len(b) == 0 || len(b) > max {
		return "", nil
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return "", errors.New("not an image")
		}
		ct = sn
	}

	_, err = db.ExecContext(ctx, `
INSERT OR REPLACE INTO photos(key, content_type, bytes, fetched_at)
VALUES(?,?,?,?);`,
		key,
		ct,
		b,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}

	return key, nil
}

// GetPhoto returns the cached bytes for a key, or sql.ErrNoRows.
func GetPhoto(ctx context.Context, db *sql.DB, key string) (contentType string, b []byte, err error) {
	err = db.QueryRowContext(ctx, `SELECT content_type, bytes FROM photos WHERE key = ?;`, key).
		Scan(&contentType, &b)
	if err != nil {
		return "", nil, err
	}
	return contentType, b, nil
}

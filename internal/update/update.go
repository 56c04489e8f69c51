// Package update looks up the newest published stkeys release.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver "github.com/blang/semver/v4"
	"github.com/stkeys/stkeys/internal/config"
)

// Repository is the GitHub slug releases are published under.
const Repository = "stkeys/stkeys"

const recordFile = "release.json"

// record is the last successful release lookup.
type record struct {
	CheckedAt time.Time `json:"checked_at"`
	Version   string    `json:"version"`
}

// Checker resolves the latest release, remembering the answer in CacheDir
// for TTL. An empty CacheDir disables the record.
type Checker struct {
	URL      string
	CacheDir string
	TTL      time.Duration
	Client   *http.Client
}

// NewChecker returns a Checker for the GitHub releases of Repository with a
// one day record under the config directory.
func NewChecker() *Checker {
	return &Checker{
		URL:      "https://api.github.com/repos/" + Repository + "/releases/latest",
		CacheDir: config.Dir(),
		TTL:      24 * time.Hour,
		Client:   &http.Client{Timeout: 2 * time.Second},
	}
}

// Latest returns the newest release version without a leading "v". A fresh
// record short-circuits the request; a failed request falls back to a stale
// record when one exists.
func (c *Checker) Latest() (semver.Version, error) {
	rec, haveRec := c.read()
	if haveRec && time.Since(rec.CheckedAt) < c.TTL {
		if v, err := semver.ParseTolerant(rec.Version); err == nil {
			return v, nil
		}
	}
	tag, err := c.fetch()
	if err == nil {
		var v semver.Version
		if v, err = semver.ParseTolerant(tag); err == nil {
			c.write(record{CheckedAt: time.Now(), Version: v.String()})
			return v, nil
		}
	}
	if haveRec {
		if v, perr := semver.ParseTolerant(rec.Version); perr == nil {
			return v, nil
		}
	}
	return semver.Version{}, err
}

// Newer reports whether the latest release is above current.
func (c *Checker) Newer(current string) (semver.Version, bool, error) {
	latest, err := c.Latest()
	if err != nil {
		return semver.Version{}, false, err
	}
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		return latest, false, fmt.Errorf("current version %q: %w", current, err)
	}
	return latest, latest.GT(cur), nil
}

// Check returns the latest version and whether it is newer than current.
// It never touches the network in CI or when noNetwork is set, and lookup
// failures only yield an empty answer.
func Check(current string, noNetwork bool) (string, bool, error) {
	if noNetwork || os.Getenv("CI") != "" {
		return "", false, nil
	}
	latest, newer, err := NewChecker().Newer(current)
	if err != nil {
		return "", false, nil
	}
	return latest.String(), newer, nil
}

func (c *Checker) fetch() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "stkeys/"+Repository)
	req.Header.Set("Accept", "application/vnd.github+json")
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}
	var rel struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", fmt.Errorf("release lookup: %w", err)
	}
	tag := strings.TrimSpace(rel.TagName)
	if tag == "" {
		tag = strings.TrimSpace(rel.Name)
	}
	return strings.TrimPrefix(tag, "v"), nil
}

func (c *Checker) read() (record, bool) {
	var rec record
	if c.CacheDir == "" {
		return rec, false
	}
	b, err := os.ReadFile(filepath.Join(c.CacheDir, recordFile))
	if err != nil || json.Unmarshal(b, &rec) != nil || rec.Version == "" {
		return rec, false
	}
	return rec, true
}

func (c *Checker) write(rec record) {
	if c.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(c.CacheDir, recordFile), b, 0o644)
}

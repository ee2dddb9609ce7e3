package modules

import (
	"context"

	"github.com/petal-labs/jutge/core"
)

// Time is the output of misc.getTime.
type Time struct {
	FullTime       string  `json:"full_time"`
	IntTimestamp   int64   `json:"int_timestamp"`
	FloatTimestamp float64 `json:"float_timestamp"`
	Time           string  `json:"time"`
	Date           string  `json:"date"`
}

// HomepageStats is the output of misc.getHomepageStats.
type HomepageStats struct {
	Users       int `json:"users"`
	Problems    int `json:"problems"`
	Submissions int `json:"submissions"`
	Exams       int `json:"exams"`
	Contests    int `json:"contests"`
}

// Misc wraps the misc module: public functions that need no login.
type Misc struct {
	client *core.Client
}

// GetFortune returns a fortune cookie.
func (m *Misc) GetFortune(ctx context.Context) (string, error) {
	s, err := call[string](ctx, m.client, "misc.getFortune", nil)
	if err != nil {
		return "", err
	}
	return *s, nil
}

// GetTime returns the current time of the server.
func (m *Misc) GetTime(ctx context.Context) (*Time, error) {
	return call[Time](ctx, m.client, "misc.getTime", nil)
}

// GetHomepageStats returns the counters shown on the Jutge homepage.
func (m *Misc) GetHomepageStats(ctx context.Context) (*HomepageStats, error) {
	return call[HomepageStats](ctx, m.client, "misc.getHomepageStats", nil)
}

// GetLogo returns the Jutge logo as a PNG download.
func (m *Misc) GetLogo(ctx context.Context) (*core.Download, error) {
	return callDownload(ctx, m.client, "misc.getLogo", nil)
}

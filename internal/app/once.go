package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bsj5/profilecard/internal/activity"
	"github.com/bsj5/profilecard/internal/lanyard"
)

// Report is a one-shot view of the presence document and the items it
// generates.
type Report struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name,omitempty"`
	AvatarURL   string       `json:"avatar_url"`
	Status      string       `json:"status"`
	Success     bool         `json:"success"`
	Items       []ReportItem `json:"items"`
}

// ReportItem is one generated activity item.
type ReportItem struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	ArtURL    string `json:"art_url,omitempty"`
	TrackURL  string `json:"track_url,omitempty"`
	ArtistURL string `json:"artist_url,omitempty"`
}

// Once fetches the presence document a single time and writes a report to w,
// as indented JSON when asJSON is set.
func Once(ctx context.Context, opts Options, w io.Writer, asJSON bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, opts.Version)
	if err != nil {
		return fmt.Errorf("init lanyard client: %w", err)
	}
	return once(ctx, client, cfg.UserID, w, asJSON)
}

func once(ctx context.Context, fetcher lanyard.PresenceFetcher, userID string, w io.Writer, asJSON bool) error {
	doc, err := fetcher.FetchPresence(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch presence: %w", err)
	}
	report := BuildReport(userID, *doc)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeReport(w, report)
}

// BuildReport summarises doc for userID.
func BuildReport(userID string, doc lanyard.Document) Report {
	r := Report{
		UserID:      userID,
		DisplayName: doc.Data.DiscordUser.DisplayName(),
		AvatarURL:   doc.AvatarURL(),
		Status:      string(doc.Data.DiscordStatus),
		Success:     doc.Success,
		Items:       []ReportItem{},
	}
	if r.Status == "" {
		r.Status = string(lanyard.StatusOffline)
	}
	for _, it := range activity.Generate(doc) {
		r.Items = append(r.Items, ReportItem{
			ID:        it.ID,
			Source:    it.Content.Source,
			Title:     it.Content.Title,
			Subtitle:  it.Content.Subtitle,
			ArtURL:    it.Content.ArtURL,
			TrackURL:  it.Content.TrackURL,
			ArtistURL: it.Content.ArtistURL,
		})
	}
	return r
}

func writeReport(w io.Writer, r Report) error {
	name := r.DisplayName
	if name == "" {
		name = r.UserID
	}
	if _, err := fmt.Fprintf(w, "%s · %s\n", name, lanyard.ParseStatus(r.Status).Label()); err != nil {
		return err
	}
	if len(r.Items) == 0 {
		_, err := fmt.Fprintln(w, "no activity")
		return err
	}
	for _, it := range r.Items {
		line := fmt.Sprintf("%s: %s", it.Source, it.Title)
		if it.Subtitle != "" {
			line += " by " + it.Subtitle
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if it.TrackURL != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", it.TrackURL); err != nil {
				return err
			}
		}
	}
	return nil
}

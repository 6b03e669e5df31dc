package lanyard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const spotifyPayload = `{
  "success": true,
  "data": {
    "discord_status": "online",
    "discord_user": {"id": "42", "username": "matt", "global_name": "Matt", "avatar": "abc"},
    "activities": [
      {"name": "Spotify", "type": 2, "details": "Song A", "state": "Artist B",
       "assets": {"large_image": "spotify:art1"}, "sync_id": "track1"},
      {"name": "Visual Studio Code", "type": 0, "details": "editing main.go"}
    ],
    "listening_to_spotify": true
  }
}`

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:8443/ignored?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com:8443" {
		t.Fatalf("base = %q, want https://example.com:8443", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_FetchPresenceDecodesDocument(t *testing.T) {
	t.Parallel()

	var gotPath, gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spotifyPayload))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	doc, err := c.FetchPresence(ctx, "42")
	if err != nil {
		t.Fatalf("FetchPresence returned error: %v", err)
	}
	if gotPath != "/v1/users/42" {
		t.Fatalf("path = %q, want /v1/users/42", gotPath)
	}
	if !strings.HasPrefix(gotUserAgent, "profilecard/") {
		t.Fatalf("User-Agent = %q, want profilecard/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}

	if !doc.Success || doc.Data.DiscordStatus != StatusOnline {
		t.Fatalf("doc = %#v, want success online", doc)
	}
	if doc.Data.DiscordUser.DisplayName() != "Matt" {
		t.Fatalf("DisplayName = %q, want Matt", doc.Data.DiscordUser.DisplayName())
	}
	if len(doc.Data.Activities) != 2 {
		t.Fatalf("activities = %d, want 2", len(doc.Data.Activities))
	}
	sp, ok := doc.Data.Activities[0].Spotify()
	if !ok {
		t.Fatalf("first activity kind = %v, want spotify", doc.Data.Activities[0].Kind)
	}
	if sp.TrackTitle != "Song A" || sp.ArtistName != "Artist B" || sp.AlbumArtRef != "spotify:art1" || sp.ExternalTrackID != "track1" {
		t.Fatalf("spotify = %#v", sp)
	}
	if _, ok := doc.Data.Activities[1].Spotify(); ok {
		t.Fatalf("second activity should not be spotify")
	}
}

func TestClient_UnsuccessfulDocumentIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	doc, err := c.FetchPresence(context.Background(), "42")
	if err != nil {
		t.Fatalf("FetchPresence returned error: %v", err)
	}
	if doc.Success || len(doc.Data.Activities) != 0 {
		t.Fatalf("doc = %#v, want unsuccessful empty document", doc)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/users/broken":
			_, _ = w.Write([]byte("{not-json"))
		case "/v1/users/nodata":
			_, _ = w.Write([]byte(`{"success": true}`))
		case "/v1/users/noname":
			_, _ = w.Write([]byte(`{"success": true, "data": {"activities": [{"details": "x"}]}}`))
		case "/v1/users/down":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	cases := []struct {
		user string
		want error
		text string
	}{
		{"broken", ErrParse, "decode response"},
		{"nodata", ErrParse, "without data"},
		{"noname", ErrParse, "has no name"},
		{"down", ErrNetwork, "returned status 500"},
		{"missing", ErrNetwork, "returned status 404"},
		{"  ", ErrNoUser, "no user id"},
	}
	for _, tc := range cases {
		t.Run(tc.user, func(t *testing.T) {
			_, err := c.FetchPresence(context.Background(), tc.user)
			if !errors.Is(err, tc.want) {
				t.Fatalf("FetchPresence(%q) error = %v, want %v", tc.user, err, tc.want)
			}
			if !strings.Contains(err.Error(), tc.text) {
				t.Fatalf("FetchPresence(%q) error = %q, want it to mention %q", tc.user, err, tc.text)
			}
		})
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchPresence(context.Background(), "42")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("FetchPresence error = %v, want ErrNetwork", err)
	}
}

// Package activity turns presence documents into keyed render items and
// binds them to the animated activity list.
package activity

import (
	"net/url"
	"strings"

	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/reconcile"
)

// SpotifyItemID is the stable key of the listening item.
const SpotifyItemID = "discord-activity-spotify"

const (
	spotifyArtScheme  = "spotify:"
	spotifyImageBase  = "https://i.scdn.co/image/"
	spotifyTrackBase  = "https://open.spotify.com/track/"
	spotifySearchBase = "https://open.spotify.com/search/"
)

// Card is the rendered content of one activity item. Two cards are equal
// when every field matches.
type Card struct {
	Source    string
	Title     string
	Subtitle  string
	ArtURL    string
	TrackURL  string
	ArtistURL string
}

// Item is a keyed card.
type Item = reconcile.Item[Card]

// Generate maps the recognised activities of doc to items, in activity
// order. Unrecognised kinds are skipped, an unsuccessful document yields no
// items, and only the first item for an id is kept.
func Generate(doc lanyard.Document) []Item {
	if !doc.Success {
		return nil
	}
	var out []Item
	for _, act := range doc.Data.Activities {
		sp, ok := act.Spotify()
		if !ok {
			continue
		}
		out = append(out, Item{ID: SpotifyItemID, Content: spotifyCard(sp)})
	}
	return reconcile.Dedupe(out)
}

func spotifyCard(sp lanyard.Spotify) Card {
	return Card{
		Source:    "Spotify",
		Title:     sp.TrackTitle,
		Subtitle:  sp.ArtistName,
		ArtURL:    ResolveArtURL(sp.AlbumArtRef),
		TrackURL:  TrackURL(sp.ExternalTrackID),
		ArtistURL: ArtistSearchURL(sp.ArtistName),
	}
}

// ResolveArtURL turns a "spotify:<id>" asset reference into an image CDN URL
// and returns any other reference unchanged.
func ResolveArtURL(ref string) string {
	if id, ok := strings.CutPrefix(ref, spotifyArtScheme); ok {
		return spotifyImageBase + id
	}
	return ref
}

// TrackURL builds the open.spotify.com deep link for a track id.
func TrackURL(id string) string {
	if strings.TrimSpace(id) == "" {
		return ""
	}
	return spotifyTrackBase + url.PathEscape(id)
}

// ArtistSearchURL builds a Spotify search link for an artist name.
func ArtistSearchURL(artist string) string {
	if strings.TrimSpace(artist) == "" {
		return ""
	}
	return spotifySearchBase + url.PathEscape(artist)
}

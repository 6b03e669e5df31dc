package lanyard

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the owner's Discord online status.
type Status string

// Known statuses. Anything else the API reports is treated as offline.
const (
	StatusOnline  Status = "online"
	StatusIdle    Status = "idle"
	StatusDND     Status = "dnd"
	StatusOffline Status = "offline"
)

// ParseStatus normalises a raw discord_status value.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOnline:
		return StatusOnline
	case StatusIdle:
		return StatusIdle
	case StatusDND:
		return StatusDND
	default:
		return StatusOffline
	}
}

// Label returns a human readable status name.
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusIdle:
		return "Idle"
	case StatusDND:
		return "Do Not Disturb"
	default:
		return "Offline"
	}
}

// Kind tags the activity variant.
type Kind int

const (
	KindOther Kind = iota
	KindSpotify
)

func (k Kind) String() string {
	if k == KindSpotify {
		return "spotify"
	}
	return "other"
}

const spotifyActivityName = "Spotify"

const (
	avatarURLFormat  = "https://cdn.discordapp.com/avatars/%s/%s.png"
	defaultAvatarURL = "https://cdn.discordapp.com/embed/avatars/0.png"
)

// Document is one presence snapshot returned by the API. Documents are
// immutable once decoded and are compared wholesale with Equal.
type Document struct {
	Success bool
	Data    Presence
}

// Presence carries the fields of the data object profilecard uses.
type Presence struct {
	DiscordStatus Status
	DiscordUser   User
	Activities    []Activity
}

// User is the subset of discord_user shown on the profile card.
type User struct {
	ID         string
	Username   string
	GlobalName string
	Avatar     string
}

// Activity is one entry of the activity list.
type Activity struct {
	Kind       Kind
	Name       string
	Details    string
	State      string
	LargeImage string
	SyncID     string
}

// Spotify is the listening variant of an activity.
type Spotify struct {
	TrackTitle      string
	ArtistName      string
	AlbumArtRef     string
	ExternalTrackID string
}

// Spotify returns the listening view of the activity. ok is false for
// every other kind.
func (a Activity) Spotify() (Spotify, bool) {
	if a.Kind != KindSpotify {
		return Spotify{}, false
	}
	return Spotify{
		TrackTitle:      a.Details,
		ArtistName:      a.State,
		AlbumArtRef:     a.LargeImage,
		ExternalTrackID: a.SyncID,
	}, true
}

// Equal reports whether two documents carry the same decoded values.
func (d Document) Equal(other Document) bool {
	return d.Success == other.Success &&
		d.Data.DiscordStatus == other.Data.DiscordStatus &&
		d.Data.DiscordUser == other.Data.DiscordUser &&
		slices.Equal(d.Data.Activities, other.Data.Activities)
}

// AvatarURL returns the CDN URL of the owner's avatar, or Discord's default
// avatar when the document has none.
func (d Document) AvatarURL() string {
	u := d.Data.DiscordUser
	if u.ID == "" || u.Avatar == "" {
		return defaultAvatarURL
	}
	return fmt.Sprintf(avatarURLFormat, u.ID, u.Avatar)
}

// DisplayName prefers the global display name over the username.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.GlobalName); name != "" {
		return name
	}
	return u.Username
}

// wire shapes mirror the JSON payload; they never leave this package.

type wireResponse struct {
	Success bool          `json:"success"`
	Data    *wirePresence `json:"data"`
}

type wirePresence struct {
	DiscordStatus string         `json:"discord_status"`
	DiscordUser   wireUser       `json:"discord_user"`
	Activities    []wireActivity `json:"activities"`
}

type wireUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

type wireActivity struct {
	Name    string      `json:"name"`
	Details string      `json:"details"`
	State   string      `json:"state"`
	Assets  *wireAssets `json:"assets"`
	SyncID  string      `json:"sync_id"`
}

type wireAssets struct {
	LargeImage string `json:"large_image"`
}

func (w wireResponse) document() (*Document, error) {
	doc := &Document{Success: w.Success}
	if !w.Success {
		return doc, nil
	}
	if w.Data == nil {
		return nil, fmt.Errorf("%w: success response without data", ErrParse)
	}
	doc.Data = Presence{
		DiscordStatus: ParseStatus(w.Data.DiscordStatus),
		DiscordUser: User{
			ID:         w.Data.DiscordUser.ID,
			Username:   w.Data.DiscordUser.Username,
			GlobalName: w.Data.DiscordUser.GlobalName,
			Avatar:     w.Data.DiscordUser.Avatar,
		},
	}
	if len(w.Data.Activities) > 0 {
		doc.Data.Activities = make([]Activity, 0, len(w.Data.Activities))
	}
	for i, raw := range w.Data.Activities {
		if strings.TrimSpace(raw.Name) == "" {
			return nil, fmt.Errorf("%w: activity %d has no name", ErrParse, i)
		}
		act := Activity{
			Kind:    KindOther,
			Name:    raw.Name,
			Details: raw.Details,
			State:   raw.State,
			SyncID:  raw.SyncID,
		}
		if raw.Name == spotifyActivityName {
			act.Kind = KindSpotify
		}
		if raw.Assets != nil {
			act.LargeImage = raw.Assets.LargeImage
		}
		doc.Data.Activities = append(doc.Data.Activities, act)
	}
	return doc, nil
}

// Package config loads profilecard's TOML configuration.
//
// # Resolution
//
//  1. An explicit path wins
//  2. Otherwise ~/.config/profilecard/config.toml
//  3. A missing file yields defaults
//  4. Empty fields fall back to their defaults
//
// # Format
//
//	user_id = "1040674597235863623"
//	api_base = "https://api.lanyard.rest"
//	poll_interval = "5s"
//	log_file = "~/.local/state/profilecard/profilecard.log"
//
//	[profile]
//	name = "Matt"
//	bio = "..."
//
//	[[profile.socials]]
//	name = "Telegram"
//	handle = "bsj5"
//	url = "https://t.me/bsj5"
//
// poll_interval is a Go duration string, clamped to at least one second.
// Socials without a name or url are skipped. A [profile] section with no
// socials keeps the default links.
//
// # Reloading
//
// Watch follows the file with fsnotify and reloads it after writes settle.
// The UI uses it to swap the profile half of the card without restarting;
// the user id and poll interval are read once at startup.
package config

// Package ui is the Bubble Tea terminal front end of profilecard.
//
// # Layout
//
// A one-line header carries the name, the Discord status dot and the health
// of the presence poll. Below it sits the card: the profile (name, Discord
// identity, bio, socials) and the ACTIVITY panel listing what the owner is
// doing right now.
//
// # Event Flow
//
//  1. The poller sends PresenceMsg when the fetched document changes
//  2. Update applies it to the activity.Panel, which reconciles its list
//  3. While anything is moving, animMsg frames advance the list and the view
//     re-renders every element at Element.StyleAt
//  4. A slow tickMsg re-reads state.Store for the header and the log overlay
//
// All list mutations happen inside Update, on the program's event loop.
//
// # Animation
//
// Terminal cells have no opacity. An element's opacity blends its colors
// toward the background, DX moves it sideways, DY eats into the blank line
// above it, and a scale below one narrows the block.
//
// # Key Bindings
//
//   - r: Refresh now (rate limited)
//   - o / a: Open the track / artist search in the browser
//   - s: Show or hide links
//   - L: Log overlay
//   - T: Cycle theme (saved to prefs.toml)
//   - h/?: Help
//   - q, ctrl+c: Quit
package ui

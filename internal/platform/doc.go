// Package platform contains the playlist synthesizer and host integration:
// URL validation and playlist ID extraction, fabricated playlists, the local
// save action with fault injection, filesystem helpers, and OS open/reveal.
package platform

package model

// Package model defines the records shared by the synthesizer, the simulated
// download pipeline and the presentation layers: playlists, videos, their
// status enums, pipeline events and the domain errors surfaced to users.

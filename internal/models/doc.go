// Package models defines domain entities for the artx artist explorer.
//
// The package contains two categories of types:
//
// 1. Value objects produced by the Spotify search client
//   - [Artist] : name, first image URL, and follower count of a search result
//
// 2. Persistent entities
//   - [SearchRecord] : one search attempt, successful or not, kept in the history database
//
// Persistent entities implement [Model]; repositories implement [Repository] for them.
package models

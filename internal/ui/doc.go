// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for exploring artists:
//  1. [SearchView] : Enter an artist name
//  2. [ResultsView] : Browse matching artists with follower counts
//  3. [DetailView] : Inspect one artist and open its image in a browser
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Searches run through the task engine; a result that is not from the most recent dispatch is dropped.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

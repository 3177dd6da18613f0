package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/models"
)

var _ list.Item = artistItem{}

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	return "Followers: " + formatter.FormatFollowers(i.artist.Followers)
}

func artistItems(artists []models.Artist) []list.Item {
	items := make([]list.Item, len(artists))
	for i, a := range artists {
		items[i] = artistItem{artist: a}
	}
	return items
}

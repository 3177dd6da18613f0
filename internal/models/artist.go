package models

import (
	"encoding/json"
	"fmt"
)

// Artist is a single search result. Values are built by the search client and never mutated afterwards.
type Artist struct {
	Name      string
	ImageURL  string // empty when the catalog returned no images
	Followers int
}

// NewArtist returns an [Artist], rejecting an empty name or negative follower count.
func NewArtist(name, imageURL string, followers int) (Artist, error) {
	if name == "" {
		return Artist{}, fmt.Errorf("artist name is required")
	}
	if followers < 0 {
		return Artist{}, fmt.Errorf("artist %q has negative follower count %d", name, followers)
	}
	return Artist{Name: name, ImageURL: imageURL, Followers: followers}, nil
}

type artistImage struct {
	URL string `json:"url"`
}

type artistFollowers struct {
	Total int `json:"total"`
}

// artistJSON mirrors an item of the search endpoint's artists.items array.
type artistJSON struct {
	Name      string          `json:"name"`
	Images    []artistImage   `json:"images"`
	Followers artistFollowers `json:"followers"`
}

// MarshalJSON encodes the artist in the catalog's item shape so output can be parsed back by the search client.
func (a Artist) MarshalJSON() ([]byte, error) {
	item := artistJSON{
		Name:      a.Name,
		Images:    []artistImage{},
		Followers: artistFollowers{Total: a.Followers},
	}
	if a.ImageURL != "" {
		item.Images = append(item.Images, artistImage{URL: a.ImageURL})
	}
	return json.Marshal(item)
}

// UnmarshalJSON decodes the item shape written by [Artist.MarshalJSON].
//
// A missing name or followers.total is an error, as is anything [NewArtist] rejects.
func (a *Artist) UnmarshalJSON(data []byte) error {
	var item struct {
		Name      *string       `json:"name"`
		Images    []artistImage `json:"images"`
		Followers *struct {
			Total *int `json:"total"`
		} `json:"followers"`
	}
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	if item.Name == nil {
		return fmt.Errorf("artist is missing name")
	}
	if item.Followers == nil || item.Followers.Total == nil {
		return fmt.Errorf("artist %q is missing followers.total", *item.Name)
	}

	var imageURL string
	if len(item.Images) > 0 {
		imageURL = item.Images[0].URL
	}

	artist, err := NewArtist(*item.Name, imageURL, *item.Followers.Total)
	if err != nil {
		return err
	}
	*a = artist
	return nil
}

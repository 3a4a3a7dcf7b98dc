package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const musicbrainzBaseURL = "https://musicbrainz.org/ws/2"

type musicbrainzResponse struct {
	ReleaseGroups []musicbrainzReleaseGroup `json:"release-groups"`
}

type musicbrainzReleaseGroup struct {
	Title            string                    `json:"title"`
	PrimaryType      string                    `json:"primary-type"`
	FirstReleaseDate string                    `json:"first-release-date"`
	ArtistCredit     []musicbrainzArtistCredit `json:"artist-credit"`
	Tags             []musicbrainzTag          `json:"tags"`
}

type musicbrainzArtistCredit struct {
	Name string `json:"name"`
}

type musicbrainzTag struct {
	Name string `json:"name"`
}

// searchMusic queries the MusicBrainz release-group search endpoint.
// MusicBrainz needs no API key but requires an identifying User-Agent.
func (c *Client) searchMusic(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", fmt.Sprintf("%d", maxResults))
	searchURL := fmt.Sprintf("%s/release-group?%s", c.musicbrainzBaseURL, params.Encode())

	var response musicbrainzResponse
	if err := c.getJSON(ctx, searchURL, &response); err != nil {
		return nil, fmt.Errorf("MusicBrainz search failed: %w", err)
	}

	groups := response.ReleaseGroups
	if len(groups) > maxResults {
		groups = groups[:maxResults]
	}

	results := make([]Result, 0, len(groups))
	for _, group := range groups {
		artist := "Unknown Artist"
		if len(group.ArtistCredit) > 0 {
			artist = group.ArtistCredit[0].Name
		}

		results = append(results, Result{
			Title:       group.Title,
			Creator:     artist,
			Genre:       joinTags(group.Tags),
			ReleaseDate: group.FirstReleaseDate,
			Source:      "MusicBrainz",
		})
	}
	return results, nil
}

// joinTags joins the first two tag names, mirroring the genre shape used
// for the other catalogs
func joinTags(tags []musicbrainzTag) string {
	if len(tags) == 0 {
		return "Unknown"
	}
	if len(tags) > 2 {
		tags = tags[:2]
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}

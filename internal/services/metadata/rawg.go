package metadata

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
)

const rawgBaseURL = "https://api.rawg.io/api"

type rawgResponse struct {
	Results []rawgGame `json:"results"`
}

type rawgGame struct {
	Name            string      `json:"name"`
	Released        string      `json:"released"`
	Rating          float64     `json:"rating"` // five-star scale
	BackgroundImage string      `json:"background_image"`
	Genres          []rawgNamed `json:"genres"`
	Developers      []rawgNamed `json:"developers"`
}

type rawgNamed struct {
	Name string `json:"name"`
}

// searchGames queries the RAWG games search endpoint
func (c *Client) searchGames(ctx context.Context, query string) ([]Result, error) {
	if c.rawgKey == "" {
		c.logger.Debug("RAWG API key not configured, skipping game search")
		return []Result{}, nil
	}

	params := url.Values{}
	params.Set("key", c.rawgKey)
	params.Set("search", query)
	params.Set("page_size", fmt.Sprintf("%d", maxResults))
	searchURL := fmt.Sprintf("%s/games?%s", c.rawgBaseURL, params.Encode())

	var response rawgResponse
	if err := c.getJSON(ctx, searchURL, &response); err != nil {
		return nil, fmt.Errorf("RAWG search failed: %w", err)
	}

	games := response.Results
	if len(games) > maxResults {
		games = games[:maxResults]
	}

	results := make([]Result, 0, len(games))
	for _, game := range games {
		developer := "Unknown Developer"
		if len(game.Developers) > 0 {
			developer = game.Developers[0].Name
		}

		result := Result{
			Title:       game.Name,
			Creator:     developer,
			Genre:       joinRAWGGenres(game.Genres),
			ReleaseDate: game.Released,
			PosterURL:   game.BackgroundImage,
			Source:      "RAWG",
		}
		if game.Rating > 0 {
			// RAWG rates on a five-star scale
			rating := math.Round(game.Rating*2*10) / 10
			result.Rating = &rating
		}
		results = append(results, result)
	}
	return results, nil
}

func joinRAWGGenres(genres []rawgNamed) string {
	if len(genres) == 0 {
		return "Unknown"
	}
	if len(genres) > 2 {
		genres = genres[:2]
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

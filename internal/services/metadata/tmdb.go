package metadata

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

type tmdbSearchResponse struct {
	Results []tmdbMovie `json:"results"`
}

type tmdbMovie struct {
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

const tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"

// tmdbGenres maps TMDB genre ids to display names
var tmdbGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// searchMovies queries the TMDB movie search endpoint
func (c *Client) searchMovies(ctx context.Context, query string) ([]Result, error) {
	if c.tmdbKey == "" {
		c.logger.Debug("TMDB API key not configured, skipping movie search")
		return []Result{}, nil
	}

	params := url.Values{}
	params.Set("api_key", c.tmdbKey)
	params.Set("query", query)
	params.Set("page", "1")
	searchURL := fmt.Sprintf("%s/search/movie?%s", c.tmdbBaseURL, params.Encode())

	var response tmdbSearchResponse
	if err := c.getJSON(ctx, searchURL, &response); err != nil {
		return nil, fmt.Errorf("TMDB search failed: %w", err)
	}

	movies := response.Results
	if len(movies) > maxResults {
		movies = movies[:maxResults]
	}

	results := make([]Result, 0, len(movies))
	for _, movie := range movies {
		result := Result{
			Title:       movie.Title,
			Creator:     "Unknown Director", // the search endpoint carries no credits
			Genre:       mapTMDBGenres(movie.GenreIDs),
			ReleaseDate: movie.ReleaseDate,
			Source:      "TMDB",
		}
		if movie.VoteAverage > 0 {
			rating := math.Round(movie.VoteAverage*10) / 10
			result.Rating = &rating
		}
		if movie.PosterPath != "" {
			result.PosterURL = tmdbImageBaseURL + movie.PosterPath
		}
		results = append(results, result)
	}
	return results, nil
}

// mapTMDBGenres joins the first two known genre names
func mapTMDBGenres(ids []int) string {
	if len(ids) == 0 {
		return "Unknown"
	}
	if len(ids) > 2 {
		ids = ids[:2]
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := tmdbGenres[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return strings.Join(names, ", ")
}

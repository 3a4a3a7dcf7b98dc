package recommend

import "github.com/collectarr/collectarr/internal/models"

// The suggestion tables are deliberately plain data: genre -> canned titles
// per media type, with one fixed fallback per type when the dominant genre
// has no entry.

var movieSuggestions = map[string][]string{
	"Action": {"Mad Max: Fury Road", "John Wick", "The Matrix"},
	"Drama":  {"The Shawshank Redemption", "Parasite", "Moonlight"},
	"Comedy": {"The Grand Budapest Hotel", "Knives Out", "Everything Everywhere All at Once"},
	"Sci-Fi": {"Blade Runner 2049", "Arrival", "Ex Machina"},
	"Horror": {"Hereditary", "The Witch", "Midsommar"},
}

var musicSuggestions = map[string][]string{
	"Rock":       {"Arctic Monkeys - AM", "Tame Impala - Currents"},
	"Pop":        {"Taylor Swift - Midnights", "Harry Styles - Fine Line"},
	"Hip-Hop":    {"Kendrick Lamar - DAMN.", "Tyler, The Creator - IGOR"},
	"Electronic": {"Daft Punk - Random Access Memories", "Aphex Twin - Syro"},
	"Jazz":       {"Kamasi Washington - The Epic", "Robert Glasper - Black Radio"},
}

var gameSuggestions = map[string][]string{
	"RPG":       {"Elden Ring", "The Witcher 3: Wild Hunt"},
	"Action":    {"God of War", "Spider-Man: Miles Morales"},
	"Strategy":  {"Civilization VI", "Total War: Warhammer III"},
	"Indie":     {"Hades", "Celeste"},
	"Adventure": {"The Last of Us Part II", "Ghost of Tsushima"},
}

var fallbacks = map[models.MediaType]Recommendation{
	models.MediaTypeMovie: {
		Title:      "Everything Everywhere All at Once",
		Type:       models.MediaTypeMovie,
		Genre:      "Sci-Fi",
		Reason:     "Highly rated recent release",
		Confidence: 90,
	},
	models.MediaTypeMusic: {
		Title:      "Billie Eilish - Happier Than Ever",
		Type:       models.MediaTypeMusic,
		Genre:      "Pop",
		Reason:     "Trending and highly rated",
		Confidence: 85,
	},
	models.MediaTypeGame: {
		Title:      "Elden Ring",
		Type:       models.MediaTypeGame,
		Genre:      "RPG",
		Reason:     "Game of the Year winner",
		Confidence: 95,
	},
}

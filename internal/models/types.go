package models

// MediaType represents the kind of media a record tracks
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeMusic MediaType = "music"
	MediaTypeGame  MediaType = "game"
)

// IsValid reports whether the media type is one of the known kinds
func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeMovie, MediaTypeMusic, MediaTypeGame:
		return true
	}
	return false
}

// Status represents where a record sits in the collection lifecycle
type Status string

const (
	StatusWishlist       Status = "wishlist"
	StatusOwned          Status = "owned"
	StatusCurrentlyUsing Status = "currently-using"
	StatusCompleted      Status = "completed"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusWishlist, StatusOwned, StatusCurrentlyUsing, StatusCompleted:
		return true
	}
	return false
}

// DefaultAvatar is assigned when a profile is created without choosing one
const DefaultAvatar = "👤"

// AvatarPalette is the fixed set of avatars a profile may use
var AvatarPalette = []string{
	"👤", "👨", "👩", "🧑", "👦", "👧",
	"🤖", "👽", "🦸", "🧙", "🎭", "🐱",
}

// ValidAvatar reports whether the avatar belongs to the palette
func ValidAvatar(avatar string) bool {
	for _, a := range AvatarPalette {
		if a == avatar {
			return true
		}
	}
	return false
}

package model

import "time"

// Movie is the aggregate root of the catalog.  A movie owns its full
// theater/showtime/seat tree and the whole tree is persisted together
// as one document.  MovieID is the externally meaningful business key
// and is unique across all movies; it is distinct from the storage
// row id.
//
// Fields:
//  MovieID            – numeric business key, unique catalog-wide.
//  Title, Language,
//  Duration, Synopsis,
//  Director           – required descriptive text.
//  Genre, Cast        – ordered string lists.
//  ReleaseDate        – calendar date of release.
//  Rating             – numeric rating.
//  PosterURL,
//  BackgroundImageURL – artwork links.
//  Theaters           – theaters showing this movie, owned by it.
//  Version            – monotonically increasing revision used for
//                       conditional saves; starts at 1.
type Movie struct {
	MovieID            int64     `json:"id"`                 // business key (doc field "id")
	Title              string    `json:"title"`              // movie title
	Genre              []string  `json:"genre"`              // genre tags, order preserved
	Language           string    `json:"language"`           // audio language
	Duration           string    `json:"duration"`           // running time as free text
	ReleaseDate        time.Time `json:"releaseDate"`        // release date
	Synopsis           string    `json:"synopsis"`           // plot summary
	Cast               []string  `json:"cast"`               // cast members, order preserved
	Director           string    `json:"director"`           // director name
	Rating             float64   `json:"rating"`             // numeric rating
	PosterURL          string    `json:"posterUrl"`          // poster image URL
	BackgroundImageURL string    `json:"backgroundImageUrl"` // backdrop image URL
	Theaters           []Theater `json:"theaters"`           // owned theater sub-documents
	Version            int64     `json:"version,omitempty"`  // aggregate revision
}

// Theater is owned by exactly one movie.  Its name is the lookup key
// inside the parent movie and must be unique there; uniqueness is
// enforced by the mutation engine, not by the schema.
type Theater struct {
	Name      string     `json:"name"`      // theater name, unique per movie
	Showtimes []Showtime `json:"showtimes"` // owned showtime sub-documents
}

// Showtime is one scheduled screening on one screen.  Screen is a
// plain label: several showtimes in the same theater may share it,
// and no standalone screen entity exists anywhere.
type Showtime struct {
	Time   string `json:"time"`   // scheduled time, kept as opaque text
	Screen string `json:"screen"` // label of the physical screen
	Seats  []Seat `json:"seats"`  // owned seat map, sized at creation
}

// Seat is one bookable place in a showtime.  Seats carry no identity
// beyond their position in the slice.
type Seat struct {
	IsBooked bool   `json:"isBooked"` // whether the seat is taken
	BookedBy string `json:"bookedBy"` // booker identifier, empty when free
}

// NewSeats returns n pristine seats.  Screen-add always builds seat
// maps through this helper so a fresh showtime can never start with
// an inconsistent isBooked/bookedBy pair.
func NewSeats(n int) []Seat {
	seats := make([]Seat, n)
	for i := range seats {
		seats[i] = Seat{IsBooked: false, BookedBy: ""}
	}
	return seats
}

// FindTheater returns a pointer to the first theater with the given
// name, or nil when the movie has none.  Lookup is a linear scan:
// a movie holds only a handful of theaters.
func (m *Movie) FindTheater(name string) *Theater {
	for i := range m.Theaters {
		if m.Theaters[i].Name == name {
			return &m.Theaters[i]
		}
	}
	return nil
}

// HasScreen reports whether any showtime in the theater carries the
// given screen label.
func (t *Theater) HasScreen(screen string) bool {
	for i := range t.Showtimes {
		if t.Showtimes[i].Screen == screen {
			return true
		}
	}
	return false
}

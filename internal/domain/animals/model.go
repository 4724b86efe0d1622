package animals

// Animal is a sheltered animal's full record.
type Animal struct {
	ID string

	Name    string
	Species string
	Breed   string
	Sex     Sex

	// Birth month/year are display-only; 0 means unknown.
	BirthMonth int
	BirthYear  int

	Neutered bool

	// Unix seconds, set at admission, immutable afterwards.
	AdmittedAt int64

	Status Status

	// Opaque reference into external image storage.
	ImagePath string

	Appearance string
	Bio        string
}

// Summary is the projection used by listing views.
type Summary struct {
	ID         string
	Name       string
	Species    string
	Breed      string
	Sex        Sex
	AdmittedAt int64
	Status     Status
	ImagePath  string
}

func (a Animal) Summary() Summary {
	return Summary{
		ID:         a.ID,
		Name:       a.Name,
		Species:    a.Species,
		Breed:      a.Breed,
		Sex:        a.Sex,
		AdmittedAt: a.AdmittedAt,
		Status:     a.Status,
		ImagePath:  a.ImagePath,
	}
}

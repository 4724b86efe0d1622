package animals

// Status tracks where an animal is in the adoption lifecycle.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusRequested  Status = "requested"
	StatusAdopted    Status = "adopted"
	StatusPassedAway Status = "passed-away"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRequested, StatusAdopted, StatusPassedAway:
		return true
	default:
		return false
	}
}

// Terminal reports whether new adoption requests are no longer accepted.
func (s Status) Terminal() bool {
	return s == StatusAdopted || s == StatusPassedAway
}

// Sex of the animal.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

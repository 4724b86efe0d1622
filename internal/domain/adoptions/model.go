package adoptions

import "animal-shelter-manager/internal/domain/animals"

// Status of an adoption request. Approved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a customer's application to adopt one animal. The requester
// fields are validated at submission only.
type Request struct {
	ID       string
	AnimalID string

	// Account that submitted the request.
	Username string

	Name         string
	Email        string
	TelNumber    string
	Address      string
	Country      string
	Occupation   string
	AnnualIncome string
	NumPeople    int
	NumChildren  int

	// Unix seconds, set at submission, immutable.
	RequestedAt int64

	// Unix seconds, 0 until the request is approved.
	AdoptedAt int64

	Status Status
}

// AnimalRequests pairs an animal summary with its pending requests.
type AnimalRequests struct {
	Animal   animals.Summary
	Requests []Request
}

// Report pairs an adopted animal with the request that was approved for it.
type Report struct {
	Animal  animals.Summary
	Request Request
}

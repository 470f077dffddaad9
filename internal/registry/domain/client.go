package domain

import "time"

// Genders accepted by the registry. An empty gender is also allowed.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// DateLayout is the wire and storage format of date_of_birth.
const DateLayout = "2006-01-02"

type Client struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string // YYYY-MM-DD or empty
	Address          string
	Gender           string
	EmergencyContact string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Programs is filled by the service, ordered by name. The store never
	// reads or writes it.
	Programs []Program
}

// ClientPatch carries the fields of a partial update. Nil means unchanged.
type ClientPatch struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Phone            *string
	DateOfBirth      *string
	Address          *string
	Gender           *string
	EmergencyContact *string
}

// Apply copies every set field onto c.
func (p ClientPatch) Apply(c *Client) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.FirstName, p.FirstName)
	set(&c.LastName, p.LastName)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.DateOfBirth, p.DateOfBirth)
	set(&c.Address, p.Address)
	set(&c.Gender, p.Gender)
	set(&c.EmergencyContact, p.EmergencyContact)
}

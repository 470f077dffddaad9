package healthsdk

import (
	"strings"
	"time"
)

// FieldErrors maps a JSON field name to a message about it.
type FieldErrors map[string]string

// fieldOrder fixes the order messages are joined in.
var fieldOrder = []string{
	"username", "password",
	"first_name", "last_name", "email", "date_of_birth", "gender",
	"name",
	"client_id", "program_id",
}

// Message joins the field messages in form order.
func (f FieldErrors) Message() string {
	var parts []string
	for _, k := range fieldOrder {
		if msg, ok := f[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, " ")
}

func (f FieldErrors) orNil() FieldErrors {
	if len(f) == 0 {
		return nil
	}
	return f
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidGender reports whether g is empty or one of the accepted values.
func ValidGender(g string) bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Validate checks both credentials are present.
func (r LoginRequest) Validate() FieldErrors {
	f := FieldErrors{}
	if blank(r.Username) {
		f["username"] = "Username is required."
	}
	if r.Password == "" {
		f["password"] = "Password is required."
	}
	return f.orNil()
}

// Validate checks the fields a registration needs. Email uniqueness is the
// registry's call and is not checked here.
func (r CreateClientRequest) Validate() FieldErrors {
	f := FieldErrors{}
	if blank(r.FirstName) {
		f["first_name"] = "First name is required."
	}
	if blank(r.LastName) {
		f["last_name"] = "Last name is required."
	}
	if blank(r.Email) {
		f["email"] = "Email is required."
	}
	if r.DateOfBirth != "" && !ValidDate(r.DateOfBirth) {
		f["date_of_birth"] = "Date of birth must be YYYY-MM-DD."
	}
	if !ValidGender(r.Gender) {
		f["gender"] = "Gender must be Male, Female or Other."
	}
	return f.orNil()
}

// Validate checks only the fields being sent. Required fields may be
// changed but not blanked, and a date is never sent empty.
func (r UpdateClientRequest) Validate() FieldErrors {
	f := FieldErrors{}
	if r.FirstName != nil && blank(*r.FirstName) {
		f["first_name"] = "First name is required."
	}
	if r.LastName != nil && blank(*r.LastName) {
		f["last_name"] = "Last name is required."
	}
	if r.Email != nil && blank(*r.Email) {
		f["email"] = "Email is required."
	}
	if r.DateOfBirth != nil && !ValidDate(*r.DateOfBirth) {
		f["date_of_birth"] = "Date of birth must be YYYY-MM-DD."
	}
	if r.Gender != nil && !ValidGender(*r.Gender) {
		f["gender"] = "Gender must be Male, Female or Other."
	}
	return f.orNil()
}

// Validate checks the program has a name.
func (r ProgramRequest) Validate() FieldErrors {
	if blank(r.Name) {
		return FieldErrors{"name": "Program name is required."}
	}
	return nil
}

// Validate checks both halves of the pair are chosen.
func (r EnrollmentRequest) Validate() FieldErrors {
	f := FieldErrors{}
	if blank(r.ClientID) {
		f["client_id"] = "Please select a client."
	}
	if blank(r.ProgramID) {
		f["program_id"] = "Please select a program."
	}
	return f.orNil()
}

package healthsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ============================================================================
// Program Types
// ============================================================================

// Program is a health program clients can be enrolled in.
type Program struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProgramRequest is the body of POST /programs and PUT /programs/{id}.
type ProgramRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ============================================================================
// Client Types
// ============================================================================

// Gender values the registry accepts. Empty means not recorded.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// DateLayout is the wire format of date_of_birth.
const DateLayout = "2006-01-02"

// Client is a registry client record.
type Client struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Address          string    `json:"address,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	Programs         []Program `json:"programs"`
}

// FullName is "First Last".
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// InProgram reports whether the client is enrolled in programID.
func (c Client) InProgram(programID string) bool {
	for _, p := range c.Programs {
		if p.ID == programID {
			return true
		}
	}
	return false
}

// CreateClientRequest is the body of POST /clients.
type CreateClientRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Address          string `json:"address,omitempty"`
	Gender           string `json:"gender,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// UpdateClientRequest is the body of PUT /clients/{id}. Nil fields are left
// out of the payload and so left unchanged by the registry.
type UpdateClientRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Address          *string `json:"address,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}

// ============================================================================
// Enrollment Types
// ============================================================================

// EnrollmentRequest names the pair to enroll. ClientID travels in the path.
type EnrollmentRequest struct {
	ClientID  string `json:"-"`
	ProgramID string `json:"program_id"`
}

// MessageResponse is the plain acknowledgement some endpoints return.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Health Check Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

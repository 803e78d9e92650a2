package models

type Person struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Address   string `json:"address,omitempty" db:"address"`
	Telephone string `json:"telephone,omitempty" db:"telephone"`
	Email     string `json:"email,omitempty" db:"email"`
	Created   int64  `json:"createdAt" db:"created"`
}

// ClientContact is an extra contact stored on the client row as a JSON
// value. Contacts have no identity of their own; updates replace the list.
type ClientContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Client struct {
	ID               string          `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Address          string          `json:"address,omitempty" db:"address"`
	LeadContact      string          `json:"leadContact,omitempty" db:"lead_contact"`
	LeadContactPhone string          `json:"leadContactPhone,omitempty" db:"lead_contact_phone"`
	LeadContactEmail string          `json:"leadContactEmail,omitempty" db:"lead_contact_email"`
	ExtraContacts    []ClientContact `json:"extraContacts" db:"extra_contacts"`
	Created          int64           `json:"createdAt" db:"created"`
}

// Job status values. Any status may be set to any other; there is no
// enforced transition graph.
const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in-progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

type Job struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`
	Status      string `json:"status" db:"status"`
	ScheduledAt *int64 `json:"scheduledAt,omitempty" db:"scheduled_at"`
	Address     string `json:"address,omitempty" db:"address"`
	Fee         *int64 `json:"fee,omitempty" db:"fee"` // minor currency units
	ClientID    string `json:"clientId" db:"client_id"`
	Created     int64  `json:"createdAt" db:"created"`
}

// JobWithPeople is a Job plus the materialized list of assigned person ids.
// The job_people linking table stays the source of truth; this list is a
// read-side projection of it.
type JobWithPeople struct {
	Job
	AssignedPeople []string `json:"assignedPeople"`
}

// Update types carry only the fields supplied by the caller; nil means the
// stored value is left unchanged.

type PersonUpdate struct {
	Name      *string
	Address   *string
	Telephone *string
	Email     *string
}

type ClientUpdate struct {
	Name             *string
	Address          *string
	LeadContact      *string
	LeadContactPhone *string
	LeadContactEmail *string
	ExtraContacts    *[]ClientContact
}

// JobUpdate.AssignedPeople, when supplied, is the complete desired
// membership: the existing assignment set is replaced, not merged.
type JobUpdate struct {
	Title          *string
	Description    *string
	Status         *string
	ScheduledAt    *int64
	Address        *string
	Fee            *int64
	ClientID       *string
	AssignedPeople *[]string
}

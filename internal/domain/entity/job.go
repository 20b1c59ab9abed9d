package entity

import "time"

// Job pairs a patient with a doctor and carries the medicine schedules to be
// reminded. Jobs are not rows: the whole list lives inside the owning user's
// encrypted blob and is decrypted per run.
type Job struct {
	ID        string     `json:"id"`
	IsActive  bool       `json:"isActive"`
	Doctor    Doctor     `json:"doctor"`
	Patient   Patient    `json:"patient"`
	Medicines []Medicine `json:"medicines"`
}

// Doctor is the reminder recipient. Name and email are both required for the
// job to be eligible.
type Doctor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Patient is the reply-to party of a reminder.
type Patient struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName returns "First Last" with whichever parts are present.
func (p Patient) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}

// Medicine is one reminder policy: when it starts, how often it repeats and
// the last day a reminder actually went out. LastSentDate is the only field
// this service ever writes back.
type Medicine struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SinceDate     *time.Time `json:"sinceDate,omitempty"`
	FrequencyDays int        `json:"frequencyDays"`
	LastSentDate  *time.Time `json:"lastSentDate,omitempty"`
}

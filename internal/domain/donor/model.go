// Package donor exposes the donor contact projection that feeds the bulk
// messaging flow.
package donor

// PhoneEntry is the id/name/contact projection of a donor.
type PhoneEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

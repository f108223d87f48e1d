// internal/model/contact.go
package model

// Contact is one prospective recipient loaded from a contact source.
// Every Contact that survives the loader has a non-empty FounderEmail
// containing "@" and a non-empty CompanyName.
type Contact struct {
	CompanyName  string `json:"company_name"`
	FounderEmail string `json:"founder_email"`
	FounderName  string `json:"founder_name"`
	Website      string `json:"website"`
	Industry     string `json:"industry"`
	Notes        string `json:"notes"`
}

// internal/errors/errors.go
package appErrors

import "fmt"

// ErrSourceNotFound indicates the contact source file is missing.
type ErrSourceNotFound struct {
	Path string
}

func (e *ErrSourceNotFound) Error() string {
	return fmt.Sprintf("contact source not found: %s", e.Path)
}

func NewSourceNotFound(path string) error {
	return &ErrSourceNotFound{Path: path}
}

// ErrSourceParse indicates the contact source could not be parsed.
type ErrSourceParse struct {
	Path string
	Err  error
}

func (e *ErrSourceParse) Error() string {
	return fmt.Sprintf("failed to parse contact source %s: %v", e.Path, e.Err)
}

func (e *ErrSourceParse) Unwrap() error { return e.Err }

func NewSourceParse(path string, err error) error {
	return &ErrSourceParse{Path: path, Err: err}
}

// ErrNoEligibleContacts indicates the source was read but filtered down
// to zero eligible records.
type ErrNoEligibleContacts struct {
	Path string
}

func (e *ErrNoEligibleContacts) Error() string {
	return fmt.Sprintf("no eligible contacts in source: %s", e.Path)
}

func NewNoEligibleContacts(path string) error {
	return &ErrNoEligibleContacts{Path: path}
}

// ErrCredentialsMissing indicates the delivery config is incomplete for
// the selected provider.
type ErrCredentialsMissing struct {
	Provider string
	Field    string
}

func (e *ErrCredentialsMissing) Error() string {
	return fmt.Sprintf("delivery credentials missing for provider %q: %s", e.Provider, e.Field)
}

func NewCredentialsMissing(provider, field string) error {
	return &ErrCredentialsMissing{Provider: provider, Field: field}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// internal/recorder/recorder.go
package recorder

import "github.com/unclebandit/coldreach-backend/internal/model"

// Recorder persists the per-recipient outcomes of a completed dispatch
// run and returns the location they were written to.
type Recorder interface {
	Persist(outcomes []model.RunOutcome) (string, error)
}

package race

import "errors"

// Recoverable rejection reasons. The recorder console reports these to the
// operator and keeps going; none of them abort the process.
var (
	ErrNotStarted      = errors.New("race has not started")
	ErrAlreadyStarted  = errors.New("race already started")
	ErrNotFound        = errors.New("runner not found")
	ErrAmbiguous       = errors.New("identifier matches more than one runner")
	ErrAlreadyFinished = errors.New("runner already finished")
)

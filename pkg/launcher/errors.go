package launcher

import "fmt"

// GuidanceError means the operator supplied a value the tool cannot use and
// the message tells them how to fix it. The CLI prints the message and exits
// zero: nothing failed, the human just has to pick a valid value.
type GuidanceError struct {
	Message string
}

func (e *GuidanceError) Error() string {
	return e.Message
}

// ConfigurationError reports a fatal configuration problem that cannot be
// resolved by picking a different value, such as an unsupported browser name.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// AcquisitionError reports that the session host failed to start.
type AcquisitionError struct {
	Browser string
	Err     error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Browser, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// NavigationError wraps a failed navigation together with the resolved
// address. Navigations are never retried here.
type NavigationError struct {
	Address string
	Err     error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("failed to navigate to %s: %v", e.Address, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

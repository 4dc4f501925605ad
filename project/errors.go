package project

import "fmt"

// StructuralError reports a config.xml that parses but does not have the
// expected widget/name shape.
type StructuralError struct {
	FN  string // config file, may be empty when parsing a buffer
	Msg string
}

func (e *StructuralError) Error() string {
	if e.FN == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.FN, e.Msg)
}

// Package codegen provides code generation helpers and constants.
package codegen

import "fmt"

// Variable names used in generated code
const (
	InputName   = "input"
	RuneName    = "c"
	CurrentName = "current"
	NextName    = "next"
)

// StateName returns the comment label of a state bit.
func StateName(bit int, label string) string {
	return fmt.Sprintf("State %d: %s", bit, label)
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

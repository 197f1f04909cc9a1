// Package names handles the "ФИО" convention used across intake forms:
// one whitespace-joined field carrying last name, first name and an
// optional middle name, in that order.
package names

import "strings"

type Parts struct {
	LastName   string
	FirstName  string
	MiddleName string
}

// Split breaks a submitted full name into its parts. Absent trailing
// parts stay empty; extra parts beyond the third are ignored.
func Split(fullName string) Parts {
	fields := strings.Fields(fullName)
	var p Parts
	if len(fields) > 0 {
		p.LastName = fields[0]
	}
	if len(fields) > 1 {
		p.FirstName = fields[1]
	}
	if len(fields) > 2 {
		p.MiddleName = fields[2]
	}
	return p
}

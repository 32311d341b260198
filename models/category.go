package models

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Category is a competition tier (Elite, Master, Rising, Mix...) within one
// gender. "Mix" categories host doubles groups.
type Category struct {
	ID     int    `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Gender Gender `json:"gender" db:"gender"`
}

// IsMix reports whether the category hosts doubles play.
func (c Category) IsMix() bool {
	return strings.Contains(strings.ToLower(c.Name), "mix")
}

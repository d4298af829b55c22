package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Specialty identifies a course subject a student can choose
type Specialty string

// Choices maps each student identifier to the specialties the student retained (0 to 3 of them, no duplicates)
type Choices map[string][]Specialty

// Group is one capacity-bounded instance of a specialty. Id is its position in the slice
// returned by BuildGroups and Index its 1-based sequence number within the specialty
type Group struct {
	Id        uint64
	Specialty Specialty
	Index     int
}

func (group Group) Name() string {
	return fmt.Sprintf("%v G%d", group.Specialty, group.Index)
}

// Triplet holds three distinct specialties in lexicographic order
type Triplet [3]Specialty

// SlotRange bounds the number of alignments tried by the aligners, both ends included
type SlotRange struct {
	Min int
	Max int
}

var DefaultSlotRange = SlotRange{Min: 2, Max: 5}

func (slots SlotRange) validate() error {
	if slots.Min < 1 || slots.Max < slots.Min {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidSlotRange, slots.Min, slots.Max)
	}
	return nil
}

// Students returns the student identifiers in lexicographic order
func (choices Choices) Students() []string {
	students := lo.Keys(choices)
	slices.Sort(students)
	return students
}

// Clone returns a deep copy, so derived choice sets never alias the caller's slices
func (choices Choices) Clone() Choices {
	clone := make(Choices, len(choices))
	for student, specialties := range choices {
		clone[student] = slices.Clone(specialties)
	}
	return clone
}

// CountSpecialties returns how many students chose each specialty
func CountSpecialties(choices Choices) map[Specialty]int {
	counts := make(map[Specialty]int)
	for _, specialties := range choices {
		for _, specialty := range lo.Uniq(specialties) {
			counts[specialty]++
		}
	}
	return counts
}

// groupsBySpecialty indexes groups by their base specialty keeping the input order
func groupsBySpecialty(groups []Group) map[Specialty][]Group {
	return lo.GroupBy(groups, func(group Group) Specialty { return group.Specialty })
}

package model

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

var testSpecialties = []Specialty{"Art", "Biology", "Chemistry", "Economics", "History", "Math", "Physics", "Literature"}

// generateChoices draws students choosing exactly `size` distinct specialties among the first `specialties` test ones
func generateChoices(rng *rand.Rand, students, specialties, size int) Choices {
	choices := make(Choices, students)
	for student := range students {
		picked := rng.Perm(specialties)[:size]
		slices.Sort(picked)
		chosen := make([]Specialty, 0, size)
		for _, index := range picked {
			chosen = append(chosen, testSpecialties[index])
		}
		choices[fmt.Sprintf("student-%03d", student)] = chosen
	}
	return choices
}

func uniformChoices(students int, specialties ...Specialty) Choices {
	choices := make(Choices, students)
	for student := range students {
		choices[fmt.Sprintf("student-%03d", student)] = slices.Clone(specialties)
	}
	return choices
}

func mustGroups(choices Choices, capacity int) []Group {
	groups, err := BuildGroups(CountSpecialties(choices), capacity)
	if err != nil {
		panic(err)
	}
	return groups
}

func groupNamed(groups []Group, name string) Group {
	for _, group := range groups {
		if group.Name() == name {
			return group
		}
	}
	panic("group not found: " + name)
}

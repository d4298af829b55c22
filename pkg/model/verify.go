package model

import "github.com/samber/lo"

// VerifySolution checks a solution against the choices it was built from:
//   - no roster exceeds capacity
//   - every rostered student chose the group's specialty and is placed at most once per specialty
//   - each student's groups lie in pairwise-distinct slots
//   - every choice is either placed or dropped, never both
func VerifySolution(solution Solution, choices Choices, capacity int) bool {
	placedSlots := make(map[string]map[int]bool)
	placedSpecialties := make(map[string]map[Specialty]bool)

	for _, group := range solution.Groups {
		roster := solution.Rosters[group.Id]
		if len(roster) > capacity {
			return false
		}

		slot := solution.Coloring.Slot(group.Id)
		for _, student := range roster {
			if !lo.Contains(choices[student], group.Specialty) {
				return false
			}

			if _, ok := placedSlots[student]; !ok {
				placedSlots[student] = make(map[int]bool)
				placedSpecialties[student] = make(map[Specialty]bool)
			}
			if placedSlots[student][slot] || placedSpecialties[student][group.Specialty] {
				return false
			}
			placedSlots[student][slot] = true
			placedSpecialties[student][group.Specialty] = true
		}
	}

	dropped := make(map[[2]string]bool)
	for _, drop := range solution.Drops {
		key := [2]string{drop.Student, string(drop.Specialty)}
		if dropped[key] || placedSpecialties[drop.Student][drop.Specialty] {
			return false
		}
		dropped[key] = true
	}

	for student, specialties := range choices {
		for _, specialty := range specialties {
			if !placedSpecialties[student][specialty] && !dropped[[2]string{student, string(specialty)}] {
				return false
			}
		}
	}
	return true
}

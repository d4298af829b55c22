package model

import (
	"slices"

	"github.com/samber/lo"
)

// FindAnchorTriplet returns the three specialties, pairwise chosen together by at least one student,
// that maximize the number of students shared by their three pairs. Ties go to the lexicographically
// smallest triplet. Returns false whenever no such triplet exists
func FindAnchorTriplet(choices Choices) (Triplet, bool) {
	//** Pair weights
	weights := make(map[[2]Specialty]int)
	chosen := make(map[Specialty]bool)
	for _, specialties := range choices {
		unique := lo.Uniq(specialties)
		for i := 0; i < len(unique); i++ {
			chosen[unique[i]] = true
			for j := i + 1; j < len(unique); j++ {
				weights[pairKey(unique[i], unique[j])]++
			}
		}
	}

	specialties := lo.Keys(chosen)
	slices.Sort(specialties)

	//** Triplets enumeration (lexicographic order, so strict improvement keeps the smallest on ties)
	var best Triplet
	bestWeight, found := 0, false
	for i := 0; i < len(specialties); i++ {
		for j := i + 1; j < len(specialties); j++ {
			weight1 := weights[pairKey(specialties[i], specialties[j])]
			if weight1 == 0 {
				continue
			}
			for k := j + 1; k < len(specialties); k++ {
				weight2 := weights[pairKey(specialties[i], specialties[k])]
				weight3 := weights[pairKey(specialties[j], specialties[k])]
				if weight2 == 0 || weight3 == 0 {
					continue
				}

				if weight := weight1 + weight2 + weight3; !found || weight > bestWeight {
					best = Triplet{specialties[i], specialties[j], specialties[k]}
					bestWeight, found = weight, true
				}
			}
		}
	}

	return best, found
}

func pairKey(specialty1, specialty2 Specialty) [2]Specialty {
	if specialty2 < specialty1 {
		specialty1, specialty2 = specialty2, specialty1
	}
	return [2]Specialty{specialty1, specialty2}
}

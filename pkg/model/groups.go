package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// BuildGroups splits every specialty into ceil(count/capacity) groups ordered by specialty name then index
func BuildGroups(counts map[Specialty]int, capacity int) ([]Group, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	specialties := lo.Keys(counts)
	slices.Sort(specialties)

	groups := make([]Group, 0, len(specialties))
	for _, specialty := range specialties {
		count := counts[specialty]
		if count <= 0 {
			continue
		}

		total := (count + capacity - 1) / capacity
		for index := 1; index <= total; index++ {
			groups = append(groups, Group{
				Id:        uint64(len(groups)),
				Specialty: specialty,
				Index:     index,
			})
		}
	}

	return groups, nil
}

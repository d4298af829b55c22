// Package preprocess derives the choices handed to the alignment engine: specialties taught by an external
// provider or pinned to a standalone slot are removed from every student, without touching the original choices
package preprocess

import (
	"slices"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/samber/lo"
)

type Options struct {
	// Specialties chosen by fewer students are moved to an external provider (0 disables it)
	ExternalBelow int
	// Specialties scheduled on their own standalone slot
	Isolated []model.Specialty
}

type Report struct {
	External []model.Specialty
	Isolated []model.Specialty
	Removed  int // Student choices taken out
}

func Apply(choices model.Choices, options Options) (model.Choices, Report) {
	counts := model.CountSpecialties(choices)

	external := lo.Filter(lo.Keys(counts), func(specialty model.Specialty, _ int) bool {
		return counts[specialty] < options.ExternalBelow
	})
	isolated := lo.Filter(lo.Uniq(options.Isolated), func(specialty model.Specialty, _ int) bool {
		return counts[specialty] > 0 && !slices.Contains(external, specialty)
	})
	slices.Sort(external)
	slices.Sort(isolated)

	removed := make(map[model.Specialty]bool, len(external)+len(isolated))
	for _, specialty := range append(slices.Clone(external), isolated...) {
		removed[specialty] = true
	}

	report := Report{
		External: external,
		Isolated: isolated,
	}
	derived := choices.Clone()
	for student, specialties := range derived {
		retained := lo.Filter(specialties, func(specialty model.Specialty, _ int) bool { return !removed[specialty] })
		report.Removed += len(specialties) - len(retained)
		derived[student] = retained
	}

	return derived, report
}

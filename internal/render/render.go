package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/limaJavier/alignments/pkg/model"
	"github.com/samber/lo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
	alignmentStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	groupStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).MarginLeft(2)
	studentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginLeft(4)
	dropStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type Document struct {
	Slots      int         `json:"slots"`
	Score      int         `json:"score"`
	Summary    Summary     `json:"summary"`
	Alignments []Alignment `json:"alignments"`
	Drops      []Drop      `json:"drops"`
}

type Summary struct {
	FullyPlaced int `json:"fullyPlaced"`
	OneShort    int `json:"oneShort"`
	SinglePlace int `json:"singlePlace"`
	Unplaced    int `json:"unplaced"`
}

type Alignment struct {
	Slot   int     `json:"slot"`
	Groups []Group `json:"groups"`
}

type Group struct {
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Students  []string `json:"students"`
}

type Drop struct {
	Student   string `json:"student"`
	Specialty string `json:"specialty"`
	Reason    string `json:"reason"`
}

// NewDocument flattens a solution into its presentation form, alignments numbered from 1
func NewDocument(solution model.Solution) Document {
	alignments := lo.Map(solution.Alignments, func(groups []model.Group, slot int) Alignment {
		return Alignment{
			Slot: slot + 1,
			Groups: lo.Map(groups, func(group model.Group, _ int) Group {
				students := make([]string, 0)
				if int(group.Id) < len(solution.Rosters) {
					students = append(students, solution.Rosters[group.Id]...)
				}
				return Group{
					Name:      group.Name(),
					Specialty: string(group.Specialty),
					Students:  students,
				}
			}),
		}
	})

	drops := lo.Map(solution.Drops, func(drop model.Drop, _ int) Drop {
		return Drop{
			Student:   drop.Student,
			Specialty: string(drop.Specialty),
			Reason:    string(drop.Reason),
		}
	})

	return Document{
		Slots: solution.Slots(),
		Score: solution.Score,
		Summary: Summary{
			FullyPlaced: solution.FullyPlaced,
			OneShort:    solution.OneShort,
			SinglePlace: solution.SinglePlace,
			Unplaced:    solution.Unplaced,
		},
		Alignments: alignments,
		Drops:      drops,
	}
}

func JSON(solution model.Solution) ([]byte, error) {
	content, err := json.MarshalIndent(NewDocument(solution), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal solution: %w", err)
	}
	return content, nil
}

// Text renders the solution for a terminal: every alignment with its groups and rosters, then the drops
func Text(solution model.Solution) string {
	document := NewDocument(solution)
	var builder strings.Builder

	builder.WriteString(titleStyle.Render(fmt.Sprintf("%d alignments, score %d", document.Slots, document.Score)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("fully placed: %d, one short: %d, single placement: %d, unplaced: %d\n\n",
		document.Summary.FullyPlaced, document.Summary.OneShort, document.Summary.SinglePlace, document.Summary.Unplaced))

	for _, alignment := range document.Alignments {
		builder.WriteString(alignmentStyle.Render(fmt.Sprintf("Alignment %d", alignment.Slot)))
		builder.WriteString("\n")
		for _, group := range alignment.Groups {
			builder.WriteString(groupStyle.Render(fmt.Sprintf("%s (%d students)", group.Name, len(group.Students))))
			builder.WriteString("\n")
			if len(group.Students) > 0 {
				builder.WriteString(studentStyle.Render(strings.Join(group.Students, ", ")))
				builder.WriteString("\n")
			}
		}
		builder.WriteString("\n")
	}

	if len(document.Drops) == 0 {
		builder.WriteString(okStyle.Render("No drops"))
		builder.WriteString("\n")
		return builder.String()
	}

	builder.WriteString(alignmentStyle.Render("Drops"))
	builder.WriteString("\n")
	for _, drop := range document.Drops {
		builder.WriteString(dropStyle.Render(fmt.Sprintf("%s: %s (%s)", drop.Student, drop.Specialty, drop.Reason)))
		builder.WriteString("\n")
	}
	return builder.String()
}

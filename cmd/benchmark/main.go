package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/alignments/internal/render"

	"github.com/samber/lo"
)

const (
	executablePath  = "../../bin/alignments"
	cohortDirectory = "../../test/out/cohorts/"
	capacity        = 25
	KB              = 1024
)

type ResultType int

const (
	solved ResultType = iota
	unsolved
)

var (
	resultTypes = map[ResultType]string{
		solved:   "solved",
		unsolved: "unsolved",
	}
	specialties = []string{"Art", "Biology", "Chemistry", "Economics", "Geography", "History", "Literature", "Math", "Music", "Physics"}
)

type CohortMetadata struct {
	Name        string
	Students    int
	Specialties int
}

type StrategyMetadata struct {
	Strategy string
	Solver   string
}

type BenchmarkResult struct {
	Strategy      StrategyMetadata
	Cohort        CohortMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
	Slots         int
	Score         int
}

func main() {
	cohorts := getCohorts()
	strategies := getStrategies()
	results := make([]BenchmarkResult, 0, len(cohorts)*len(strategies))

	for _, cohort := range cohorts {
		for _, strategy := range strategies {
			fmt.Printf("Benchmarking cohort \"%v\" with strategy \"%v\" and solver \"%v\"\n", cohort.Name, strategy.Strategy, strategy.Solver)

			result := measure(strategy, cohort.Name)
			result.Strategy = strategy
			result.Cohort = cohort
			results = append(results, result)
		}
	}

	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	toCsv(file, results)
}

// getCohorts writes one random cohort per size into the cohort directory
func getCohorts() []CohortMetadata {
	if err := os.MkdirAll(cohortDirectory, 0755); err != nil {
		log.Fatalf("cannot create directory: %v", err)
	}

	cohorts := make([]CohortMetadata, 0)
	for _, students := range []int{50, 100, 200, 400} {
		rng := rand.New(rand.NewPCG(uint64(students), 0))
		choices := generateCohort(rng, students, specialties)

		filename := filepath.Join(cohortDirectory, fmt.Sprintf("cohort_%d.csv", students))
		file, err := os.Create(filename)
		if err != nil {
			log.Fatalf("cannot create cohort file: %v", err)
		}
		if err := writeCohort(file, choices); err != nil {
			log.Fatalf("cannot write cohort file: %v", err)
		}
		file.Close()

		cohorts = append(cohorts, CohortMetadata{
			Name:        filename,
			Students:    students,
			Specialties: len(specialties),
		})
	}
	return cohorts
}

func getStrategies() []StrategyMetadata {
	return []StrategyMetadata{
		{Strategy: "exact"},
		{Strategy: "heuristic"},
		{Strategy: "sat", Solver: "gini"},
		{Strategy: "sat", Solver: "kissat"},
	}
}

// generateCohort gives every student between one and three distinct specialties
func generateCohort(rng *rand.Rand, students int, specialties []string) [][]string {
	return lo.Times(students, func(student int) []string {
		count := 1 + rng.IntN(min(3, len(specialties)))
		chosen := lo.Map(rng.Perm(len(specialties))[:count], func(index int, _ int) string { return specialties[index] })
		return append([]string{fmt.Sprintf("s%03d", student)}, chosen...)
	})
}

func writeCohort(writer io.Writer, rows [][]string) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write([]string{"student", "choice1", "choice2", "choice3"}); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

func measure(strategy StrategyMetadata, cohortFile string) (result BenchmarkResult) {
	args := []string{"-v", executablePath, "-strategy", strategy.Strategy, "-capacity", fmt.Sprint(capacity), "-max-slots", "10", "-file", cohortFile}
	if strategy.Solver != "" {
		args = append(args, "-solver", strategy.Solver)
	}
	cmd := exec.Command("/usr/bin/time", args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution \"alignments\" at cohort \"%v\" using strategy \"%v\", solver \"%v\": %v\n", cohortFile, strategy.Strategy, strategy.Solver, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result.Result = unsolved
	} else {
		result.Result = solved
		var document render.Document
		if err := json.Unmarshal(stdOut.Bytes(), &document); err != nil {
			log.Fatalf("cannot parse output of cohort \"%v\": %v", cohortFile, err)
		}
		result.Slots = document.Slots
		result.Score = document.Score
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	result.Duration = parseDurationLine(getLine("wall clock"))
	result.Memory = parseMemoryLine(getLine("maximum resident set size"))
	result.CpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))
	return result
}

func toCsv(writer io.Writer, results []BenchmarkResult) {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"Strategy", "Solver", "Cohort", "Students", "Specialties", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result", "Slots", "Score"}
	if err := csvWriter.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Strategy.Strategy,
			result.Strategy.Solver,
			result.Cohort.Name,
			fmt.Sprintf("%d", result.Cohort.Students),
			fmt.Sprintf("%d", result.Cohort.Specialties),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
			fmt.Sprintf("%d", result.Slots),
			fmt.Sprintf("%d", result.Score),
		}
		if err := csvWriter.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}

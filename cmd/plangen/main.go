package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"runcoach/backend/internal/importer"
	"runcoach/backend/internal/model"
	"runcoach/backend/internal/observability"
	"runcoach/backend/internal/planner"
)

func main() {
	raceDate := flag.String("race-date", "", "race date, YYYY-MM-DD")
	distance := flag.Float64("distance", 13.1, "race distance in miles")
	targetMinutes := flag.Float64("target-minutes", 0, "goal finish time in minutes")
	weekStart := flag.String("week-start", "", "any date in the week to plan (default: this week)")
	weeks := flag.Int("weeks", 1, "plan length: 1 or 12")
	target := flag.Float64("target-miles", 0, "weekly mileage to reconcile a single week to")
	level := flag.String("level", "", "fitness level for an assessment when no files are given")
	weeklyMiles := flag.Float64("weekly-miles", 0, "assessment weekly mileage")
	days := flag.Int("days", 4, "assessment days per week")
	seed := flag.Int64("seed", 0, "random seed for synthesized history (0 = time seeded)")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -race-date DATE -target-minutes N [flags] [activity.gpx|activity.fit ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		observability.SetupLogging("debug", true)
	} else {
		observability.SetupLogging("error", true)
	}

	race, err := time.Parse("2006-01-02", *raceDate)
	if err != nil {
		flag.Usage()
		os.Exit(2)
	}
	goal := model.Goal{RaceDate: race, Distance: *distance, TargetTimeMinutes: *targetMinutes}

	source, err := buildSource(flag.Args(), *level, *weeklyMiles, *days)
	if err != nil {
		log.Fatal().Err(err).Msg("read history")
	}

	now := time.Now().UTC()
	pc, err := planner.NewPlanningContext(goal, source, now, planner.NewSynthesizer(planner.NewSeededSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "plangen: %v\n", err)
		os.Exit(1)
	}
	log.Debug().Str("source", string(pc.Source)).Str("mode", pc.Mode.String()).Float64("weekly_miles", pc.WeeklyMileage).Msg("planning context ready")

	var out interface{}
	switch *weeks {
	case 1:
		start := now
		if *weekStart != "" {
			start, err = planner.ParseWeekStart(*weekStart)
			if err != nil {
				fmt.Fprintf(os.Stderr, "plangen: %v\n", err)
				os.Exit(2)
			}
		}
		out = planner.GenerateWeeklyPlan(pc, start, *target)
	case planner.MacrocycleWeeks:
		out = planner.GenerateTwelveWeekPlan(pc)
	default:
		fmt.Fprintf(os.Stderr, "plangen: -weeks must be 1 or %d\n", planner.MacrocycleWeeks)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("write plan")
	}
}

// buildSource prefers activity files, then an assessment, then nothing.
func buildSource(files []string, level string, weeklyMiles float64, days int) (planner.DataSource, error) {
	if len(files) > 0 {
		runs := make([]model.Run, 0, len(files))
		for i, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			run, format, err := importer.Parse(filepath.Base(path), data)
			if err != nil {
				log.Warn().Err(err).Str("file", path).Msg("skipping activity")
				continue
			}
			run.ID = fmt.Sprintf("file-%d", i+1)
			log.Debug().Str("file", path).Str("format", string(format)).Float64("miles", run.DistanceMiles).Msg("activity loaded")
			runs = append(runs, run)
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("no runs could be read from %d files", len(files))
		}
		return planner.Historical{Runs: runs}, nil
	}

	if level != "" {
		a := model.FitnessAssessment{
			FitnessLevel:            model.FitnessLevel(level),
			WeeklyMileage:           weeklyMiles,
			DaysPerWeek:             days,
			RecentRunningExperience: model.ExperienceRegular,
			CompletedAt:             time.Now().UTC(),
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return planner.Synthesized{Assessment: a}, nil
	}
	return planner.NoHistory{}, nil
}

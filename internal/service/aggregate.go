package service

import (
	"math"

	"interview-service/internal/models"
)

// gradeBands maps a percentage to a letter grade. Evaluated top-down,
// lower bound inclusive, first match wins.
var gradeBands = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C"},
	{40, "D"},
}

const (
	marksPerQuestion  = 10
	strengthThreshold = 65
	weaknessThreshold = 50
)

// Aggregate folds a completed session's per-question results into the
// final report. Pure over session.Scores; requires a fully answered,
// non-empty question sequence.
func Aggregate(session *models.InterviewSession) (*models.FinalSummary, error) {
	total := len(session.Questions)
	if total == 0 || len(session.Scores) < total {
		return nil, errEmptySession()
	}

	var totalMarks float64
	for _, s := range session.Scores {
		totalMarks += s.OverallMarks
	}
	maxPossible := total * marksPerQuestion

	skillAverages := make(map[string]float64, len(models.SkillKeys))
	strengths := make([]string, 0, len(models.SkillKeys))
	weaknesses := make([]string, 0, len(models.SkillKeys))
	for _, skill := range models.SkillKeys {
		var sum float64
		for _, s := range session.Scores {
			sum += s.SkillScores[skill]
		}
		avg := round1(sum / float64(total))
		skillAverages[skill] = avg
		if avg >= strengthThreshold {
			strengths = append(strengths, skill)
		} else if avg < weaknessThreshold {
			weaknesses = append(weaknesses, skill)
		}
	}

	percentage := round2(totalMarks / float64(maxPossible) * 100)

	return &models.FinalSummary{
		TotalMarks:      round2(totalMarks),
		AverageScore:    round2(totalMarks / float64(total)),
		Percentage:      percentage,
		TotalQuestions:  total,
		MaxPossible:     maxPossible,
		SkillAverages:   skillAverages,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		DominantEmotion: dominantEmotion(session.Scores),
		Grade:           Grade(percentage),
	}, nil
}

// Grade maps a percentage onto the letter-grade bands.
func Grade(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return "F"
}

// dominantEmotion returns the modal emotion label across results. Ties
// keep the label encountered first in result order.
func dominantEmotion(results []models.Result) string {
	if len(results) == 0 {
		return "neutral"
	}
	counts := make(map[string]int, len(results))
	best, bestCount := "", 0
	for _, r := range results {
		emotion := r.Emotion
		if emotion == "" {
			emotion = "neutral"
		}
		counts[emotion]++
		if counts[emotion] > bestCount {
			best, bestCount = emotion, counts[emotion]
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

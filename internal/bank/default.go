package bank

import "interview-service/internal/models"

// Default returns the built-in question bank, used when no bank file is
// configured.
func Default() *Bank {
	return New([]Domain{
		{
			Key: "backend",
			Rounds: []Round{
				{
					Name: "round_1_background",
					Questions: []models.Question{
						{
							Prompt:      "Tell me about your experience building backend services.",
							Category:    "behavioral",
							Difficulty:  "easy",
							Keywords:    []string{"api", "database", "deployment"},
							ModelAnswer: "Describes concrete services built, the stack used, and the problems they solved.",
						},
						{
							Prompt:      "What does a typical request lifecycle look like in a service you have worked on?",
							Category:    "technical",
							Difficulty:  "easy",
							Keywords:    []string{"request", "middleware", "response"},
							ModelAnswer: "Walks through routing, validation, business logic, persistence and the response path.",
						},
					},
				},
				{
					Name: "round_2_domain",
					Questions: []models.Question{
						{
							Prompt:      "How would you design a rate limiter for a public API?",
							Category:    "technical",
							Difficulty:  "medium",
							Weight:      1.5,
							Keywords:    []string{"token bucket", "sliding window", "redis"},
							ModelAnswer: "Compares token bucket and sliding window, covers distributed state and failure modes.",
						},
						{
							Prompt:      "Explain how you would keep two services' data consistent without distributed transactions.",
							Category:    "technical",
							Difficulty:  "medium",
							Weight:      1.5,
							Keywords:    []string{"saga", "outbox", "idempotency"},
							ModelAnswer: "Covers sagas or the outbox pattern, idempotent consumers and reconciliation.",
						},
					},
				},
				{
					Name: "round_3_project",
					Questions: []models.Question{
						{
							Prompt:      "Describe the hardest production incident you have debugged end to end.",
							Category:    "behavioral",
							Difficulty:  "hard",
							Weight:      2.0,
							Keywords:    []string{"incident", "root cause", "monitoring"},
							ModelAnswer: "Shows a structured investigation, the root cause found, and the prevention work after.",
						},
					},
				},
			},
		},
		{
			Key: "frontend",
			Rounds: []Round{
				{
					Name: "round_1_background",
					Questions: []models.Question{
						{
							Prompt:      "Walk me through a user interface you are proud of building.",
							Category:    "behavioral",
							Difficulty:  "easy",
							Keywords:    []string{"component", "design", "accessibility"},
							ModelAnswer: "Covers the user problem, component structure and accessibility decisions.",
						},
					},
				},
				{
					Name: "round_2_domain",
					Questions: []models.Question{
						{
							Prompt:      "How do you keep a large single-page application fast as it grows?",
							Category:    "technical",
							Difficulty:  "medium",
							Weight:      1.5,
							Keywords:    []string{"code splitting", "memoization", "bundle"},
							ModelAnswer: "Mentions code splitting, render profiling, caching and bundle budgets.",
						},
					},
				},
				{
					Name: "round_3_project",
					Questions: []models.Question{
						{
							Prompt:      "Describe a time you had to rework a feature after user feedback.",
							Category:    "behavioral",
							Difficulty:  "hard",
							Weight:      2.0,
							Keywords:    []string{"feedback", "iteration", "metrics"},
							ModelAnswer: "Shows how feedback was gathered, what changed, and how the result was measured.",
						},
					},
				},
			},
		},
		{
			Key: "datascience",
			Rounds: []Round{
				{
					Name: "round_1_background",
					Questions: []models.Question{
						{
							Prompt:      "What kinds of data problems have you worked on?",
							Category:    "behavioral",
							Difficulty:  "easy",
							Keywords:    []string{"dataset", "model", "pipeline"},
							ModelAnswer: "Names real datasets and the modelling or pipeline work done on them.",
						},
					},
				},
				{
					Name: "round_2_domain",
					Questions: []models.Question{
						{
							Prompt:      "How do you decide whether a model is good enough to ship?",
							Category:    "technical",
							Difficulty:  "medium",
							Weight:      1.5,
							Keywords:    []string{"baseline", "validation", "metrics"},
							ModelAnswer: "Talks about baselines, holdout validation, business metrics and failure cost.",
						},
					},
				},
				{
					Name: "round_3_project",
					Questions: []models.Question{
						{
							Prompt:      "Tell me about a model that failed in production and what you learned.",
							Category:    "behavioral",
							Difficulty:  "hard",
							Weight:      2.0,
							Keywords:    []string{"drift", "monitoring", "retraining"},
							ModelAnswer: "Covers drift or data issues, how they were detected, and the monitoring added.",
						},
					},
				},
			},
		},
	})
}

package models

import "time"

// Session states derived from recorded results; see State().
const (
	StateCreated    = "created"
	StateInProgress = "in_progress"
	StateFinished   = "finished"
)

// InterviewSession is one candidate's run through a selected question
// sequence. It is created once by start, grows by exactly one Result per
// evaluate call, and never shrinks. FinalResult is set only when every
// question has a Result and the last submitted index was the final one.
type InterviewSession struct {
	ID             string        `bson:"_id" json:"session_id"`
	Domain         string        `bson:"domain" json:"domain"`
	Level          string        `bson:"level" json:"level"`
	Questions      []Question    `bson:"questions" json:"questions"`
	Scores         []Result      `bson:"scores" json:"scores"`
	TotalQuestions int           `bson:"total_questions" json:"total_questions"`
	FinalResult    *FinalSummary `bson:"final_result,omitempty" json:"final_result,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}

// State reports where the session is in its lifecycle. The finished
// state is terminal.
func (s *InterviewSession) State() string {
	switch {
	case s.FinalResult != nil:
		return StateFinished
	case len(s.Scores) > 0:
		return StateInProgress
	default:
		return StateCreated
	}
}

// Finished reports whether the terminal transition has happened.
func (s *InterviewSession) Finished() bool {
	return s.FinalResult != nil
}

// SafeQuestions returns the question sequence with model answers
// stripped, for embedding in client responses.
func (s *InterviewSession) SafeQuestions() []QuestionView {
	views := make([]QuestionView, 0, len(s.Questions))
	for _, q := range s.Questions {
		views = append(views, q.View())
	}
	return views
}

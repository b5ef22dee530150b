package models

// Skill keys the evaluator scores on a 0-100 scale.
var SkillKeys = []string{"technical", "communication", "problem_solving", "confidence"}

// Result is the scored outcome of one answered question. It carries a
// copy of the question metadata so reports stay stable even if the bank
// changes between sessions. Never mutated after append.
type Result struct {
	Question       string                 `bson:"question" json:"question"`
	QuestionIndex  int                    `bson:"question_index" json:"question_index"`
	Category       string                 `bson:"category" json:"category"`
	Difficulty     string                 `bson:"difficulty" json:"difficulty"`
	Weight         float64                `bson:"weight" json:"weight"`
	Transcript     string                 `bson:"transcript" json:"transcript"`
	OverallMarks   float64                `bson:"overall_marks" json:"overall_marks"`
	OverallPercent float64                `bson:"overall_percentage" json:"overall_percentage"`
	Emotion        string                 `bson:"emotion" json:"emotion"`
	EmotionDetails map[string]interface{} `bson:"emotion_details" json:"emotion_details"`
	Sentiment      string                 `bson:"sentiment" json:"sentiment"`
	Feedback       string                 `bson:"feedback" json:"feedback"`
	Breakdown      map[string]interface{} `bson:"breakdown" json:"breakdown"`
	SkillScores    map[string]float64     `bson:"skill_scores" json:"skill_scores"`
	VoiceAnalysis  map[string]interface{} `bson:"voice_analysis" json:"voice_analysis"`
	Keywords       map[string]interface{} `bson:"keywords" json:"keywords"`
}

// FinalSummary is the aggregate report computed once, at the terminal
// transition. Immutable after that.
type FinalSummary struct {
	TotalMarks      float64            `bson:"total_marks" json:"total_marks"`
	AverageScore    float64            `bson:"average_score" json:"average_score"`
	Percentage      float64            `bson:"percentage" json:"percentage"`
	TotalQuestions  int                `bson:"total_questions" json:"total_questions"`
	MaxPossible     int                `bson:"max_possible" json:"max_possible"`
	SkillAverages   map[string]float64 `bson:"skill_averages" json:"skill_averages"`
	Strengths       []string           `bson:"strengths" json:"strengths"`
	Weaknesses      []string           `bson:"weaknesses" json:"weaknesses"`
	DominantEmotion string             `bson:"dominant_emotion" json:"dominant_emotion"`
	Grade           string             `bson:"grade" json:"grade"`
}

// Progress describes how far a session has advanced, returned on every
// non-terminal evaluate response.
type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

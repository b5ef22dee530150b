package evaluator

// Request carries one answer and its question context to the
// multimodal evaluator.
type Request struct {
	AnswerText  string
	Keywords    []string
	Weight      float64
	ImagePath   string
	AudioPath   string
	ModelAnswer string
	Category    string
}

// Evaluation is the fixed result shape the evaluator contract
// guarantees. The open-ended sections stay as sanitized maps since
// their internals vary by evaluator model version.
type Evaluation struct {
	Transcript        string
	OverallMarks      float64
	OverallPercentage float64
	EmotionDetected   string
	EmotionDetails    map[string]interface{}
	Sentiment         string
	Feedback          string
	Breakdown         map[string]interface{}
	SkillScores       map[string]float64
	VoiceAnalysis     map[string]interface{}
	Keywords          map[string]interface{}
}

package models

// Question is one interview prompt loaded from the question bank.
// Records are immutable once loaded.
type Question struct {
	Prompt      string   `bson:"prompt" json:"q" yaml:"q"`
	Category    string   `bson:"category" json:"category" yaml:"category"`
	Difficulty  string   `bson:"difficulty" json:"difficulty" yaml:"difficulty"`
	Weight      float64  `bson:"weight" json:"weight" yaml:"weight"`
	Keywords    []string `bson:"keywords" json:"keywords,omitempty" yaml:"keywords"`
	ModelAnswer string   `bson:"model_answer" json:"model_answer,omitempty" yaml:"model_answer"`
}

// QuestionView is the client-safe projection of a Question. The model
// answer never leaves the service.
type QuestionView struct {
	Prompt     string  `json:"q"`
	Category   string  `json:"category"`
	Difficulty string  `json:"difficulty"`
	Weight     float64 `json:"weight"`
}

// ApplyDefaults fills the optional fields the bank format allows to omit.
func (q *Question) ApplyDefaults() {
	if q.Category == "" {
		q.Category = "technical"
	}
	if q.Difficulty == "" {
		q.Difficulty = "medium"
	}
	if q.Weight <= 0 {
		q.Weight = 1.0
	}
}

// View strips the model answer from a question.
func (q Question) View() QuestionView {
	return QuestionView{
		Prompt:     q.Prompt,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Weight:     q.Weight,
	}
}

package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"interview-service/internal/audio"
	"interview-service/internal/bank"
	"interview-service/internal/evaluator"
	"interview-service/internal/store"
)

// stubEvaluator returns a fixed evaluation without touching the
// network; failure mode is switchable per test.
type stubEvaluator struct {
	eval  evaluator.Evaluation
	err   error
	calls int
}

func (s *stubEvaluator) Evaluate(ctx context.Context, req evaluator.Request) (*evaluator.Evaluation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	eval := s.eval
	return &eval, nil
}

func passingEvaluation() evaluator.Evaluation {
	return evaluator.Evaluation{
		Transcript:        "stub transcript",
		OverallMarks:      8.0,
		OverallPercentage: 80.0,
		EmotionDetected:   "happy",
		EmotionDetails:    map[string]interface{}{"happy": 0.9},
		Sentiment:         "positive",
		Feedback:          "good answer",
		Breakdown:         map[string]interface{}{"keyword_score": 6.0},
		SkillScores:       map[string]float64{"technical": 70, "communication": 70, "problem_solving": 70, "confidence": 70},
		VoiceAnalysis:     map[string]interface{}{"wpm": 120.0},
		Keywords:          map[string]interface{}{},
	}
}

func newTestService(t *testing.T, ev Evaluator) *SessionService {
	t.Helper()
	return NewSessionService(bank.Default(), store.NewMemoryStore(), ev, t.TempDir(), nil)
}

func validAudio(t *testing.T) Upload {
	t.Helper()
	data, err := audio.EncodeWAV(make([]int16, 400), audio.CanonicalSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	return Upload{Filename: "answer.wav", ContentType: "audio/wav", Data: data}
}

func validImage() Upload {
	return Upload{Filename: "frame.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")}
}

func TestStartStripsModelAnswers(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})

	resp, err := svc.Start(context.Background(), "backend", "all")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.TotalQuestions != len(resp.Questions) {
		t.Errorf("total_questions = %d but %d question views returned", resp.TotalQuestions, len(resp.Questions))
	}
	if resp.TotalQuestions == 0 {
		t.Fatal("backend domain materialized no questions")
	}
	for _, q := range resp.Questions {
		if q.Prompt == "" || q.Category == "" || q.Difficulty == "" || q.Weight <= 0 {
			t.Errorf("incomplete question view: %+v", q)
		}
	}
}

func TestStartUnknownDomainFallsBack(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})

	resp, err := svc.Start(context.Background(), "underwater basket weaving", "all")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Domain != bank.DefaultDomain {
		t.Errorf("domain = %q, want fallback %q", resp.Domain, bank.DefaultDomain)
	}
}

func TestEvaluateUnknownSession(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})

	_, err := svc.Evaluate(context.Background(), "no-such-session", 0, "answer", validImage(), validAudio(t))
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEvaluateInvalidIndexAppendsNothing(t *testing.T) {
	stub := &stubEvaluator{eval: passingEvaluation()}
	svc := newTestService(t, stub)
	started, _ := svc.Start(context.Background(), "backend", "easy")

	for _, index := range []int{-1, started.TotalQuestions, started.TotalQuestions + 5} {
		_, err := svc.Evaluate(context.Background(), started.SessionID, index, "answer", validImage(), validAudio(t))
		var svcErr *Error
		if !errors.As(err, &svcErr) || svcErr.Kind != KindInvalidIndex {
			t.Fatalf("index %d: expected invalid-index error, got %v", index, err)
		}
	}

	if stub.calls != 0 {
		t.Errorf("evaluator invoked %d times for out-of-range indices", stub.calls)
	}
	session, err := svc.Get(context.Background(), started.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(session.Scores) != 0 {
		t.Errorf("%d results appended despite invalid indices", len(session.Scores))
	}
}

func TestEvaluateRejectsTinyAudio(t *testing.T) {
	stub := &stubEvaluator{eval: passingEvaluation()}
	svc := newTestService(t, stub)
	started, _ := svc.Start(context.Background(), "backend", "easy")

	tiny := Upload{Filename: "blip.webm", ContentType: "audio/webm", Data: make([]byte, MinAudioBytes-1)}
	_, err := svc.Evaluate(context.Background(), started.SessionID, 0, "answer", validImage(), tiny)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindInvalidAudio {
		t.Fatalf("expected invalid-audio error, got %v", err)
	}
	if stub.calls != 0 {
		t.Error("evaluator must not run for rejected audio")
	}
}

func TestEvaluateFullSession(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})
	ctx := context.Background()

	// backend easy round has exactly two questions.
	started, err := svc.Start(ctx, "backend", "easy")
	if err != nil {
		t.Fatal(err)
	}
	if started.TotalQuestions != 2 {
		t.Fatalf("expected 2 easy questions, got %d", started.TotalQuestions)
	}

	first, err := svc.Evaluate(ctx, started.SessionID, 0, "first answer", validImage(), validAudio(t))
	if err != nil {
		t.Fatal(err)
	}
	if first.Finished {
		t.Fatal("session finished after first of two answers")
	}
	if first.Progress == nil || first.Progress.Current != 1 || first.Progress.Total != 2 || first.Progress.Percentage != 50.0 {
		t.Errorf("progress = %+v, want 1/2 at 50.0", first.Progress)
	}
	if first.CurrentScore.OverallMarks != 8.0 || first.CurrentScore.QuestionIndex != 0 {
		t.Errorf("current score wrong: %+v", first.CurrentScore)
	}

	last, err := svc.Evaluate(ctx, started.SessionID, 1, "second answer", validImage(), validAudio(t))
	if err != nil {
		t.Fatal(err)
	}
	if !last.Finished {
		t.Fatal("session not finished after last answer")
	}
	final := last.FinalResult
	if final == nil {
		t.Fatal("terminal response carries no final result")
	}
	if final.AverageScore != 8.0 {
		t.Errorf("average = %v, want 8.0", final.AverageScore)
	}
	if final.Percentage != 80.0 {
		t.Errorf("percentage = %v, want 80.0", final.Percentage)
	}
	if final.Grade != "A" {
		t.Errorf("grade = %q, want A", final.Grade)
	}
	if len(final.Strengths) != 4 {
		t.Errorf("strengths = %v, want all four skills", final.Strengths)
	}
	if len(final.Weaknesses) != 0 {
		t.Errorf("weaknesses = %v, want none", final.Weaknesses)
	}
	if final.DominantEmotion != "happy" {
		t.Errorf("dominant emotion = %q", final.DominantEmotion)
	}
	if len(last.AllScores) != 2 {
		t.Errorf("all_scores has %d entries, want 2", len(last.AllScores))
	}

	// The persisted record carries the terminal state.
	session, err := svc.Get(ctx, started.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !session.Finished() || session.FinalResult == nil {
		t.Error("persisted session is not terminal")
	}
}

func TestEvaluateDuplicateIndexAppends(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})
	ctx := context.Background()
	started, _ := svc.Start(ctx, "backend", "easy")

	if _, err := svc.Evaluate(ctx, started.SessionID, 0, "take one", validImage(), validAudio(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Evaluate(ctx, started.SessionID, 0, "take two", validImage(), validAudio(t)); err != nil {
		t.Fatal(err)
	}

	session, err := svc.Get(ctx, started.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	// Resubmission appends a second result for the same index; it
	// never overwrites the first.
	if len(session.Scores) != 2 {
		t.Fatalf("expected 2 appended results, got %d", len(session.Scores))
	}
	if session.Scores[0].QuestionIndex != 0 || session.Scores[1].QuestionIndex != 0 {
		t.Errorf("both results should reference index 0: %+v", session.Scores)
	}
}

func TestEvaluateCleansTempFilesOnSuccess(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})
	ctx := context.Background()
	started, _ := svc.Start(ctx, "backend", "easy")

	if _, err := svc.Evaluate(ctx, started.SessionID, 0, "answer", validImage(), validAudio(t)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(svc.TempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not empty after evaluate: %d files remain", len(entries))
	}
}

func TestEvaluateFailureCleansUpAndRecordsNothing(t *testing.T) {
	stub := &stubEvaluator{err: errors.New("model crashed")}
	svc := newTestService(t, stub)
	ctx := context.Background()
	started, _ := svc.Start(ctx, "backend", "easy")

	_, err := svc.Evaluate(ctx, started.SessionID, 0, "answer", validImage(), validAudio(t))
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindEvaluationFailure {
		t.Fatalf("expected evaluation-failure error, got %v", err)
	}

	entries, rerr := os.ReadDir(svc.TempDir)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if len(entries) != 0 {
		t.Errorf("temp files leaked on evaluator failure: %d remain", len(entries))
	}

	session, gerr := svc.Get(ctx, started.SessionID)
	if gerr != nil {
		t.Fatal(gerr)
	}
	if len(session.Scores) != 0 {
		t.Error("partial result recorded despite evaluator failure")
	}
}

func TestGetStripsModelAnswers(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})
	ctx := context.Background()
	started, _ := svc.Start(ctx, "backend", "all")

	session, err := svc.Get(ctx, started.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	for i, q := range session.Questions {
		if q.ModelAnswer != "" {
			t.Errorf("question %d leaks its model answer", i)
		}
	}
}

func TestGetUnknownSession(t *testing.T) {
	svc := newTestService(t, &stubEvaluator{eval: passingEvaluation()})

	_, err := svc.Get(context.Background(), "missing")
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the external multimodal evaluator over HTTP. The
// evaluator runs the NLP/face/voice models; this service only ships it
// normalized inputs and maps its response.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		// Multimodal scoring is slow; match the generous timeout the
		// model side advertises.
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		BaseURL:    baseURL,
	}
}

// Evaluate posts one answer with its image and audio artifacts to the
// evaluator and returns the sanitized result.
func (c *Client) Evaluate(ctx context.Context, req Request) (*Evaluation, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	keywords, err := json.Marshal(req.Keywords)
	if err != nil {
		return nil, err
	}
	fields := map[string]string{
		"answer_text":  req.AnswerText,
		"keywords":     string(keywords),
		"weight":       strconv.FormatFloat(req.Weight, 'f', -1, 64),
		"model_answer": req.ModelAnswer,
		"category":     req.Category,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := attachFile(w, "image", req.ImagePath); err != nil {
		return nil, err
	}
	if err := attachFile(w, "audio", req.AudioPath); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/evaluate", &b)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("evaluator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("evaluator %s: %s", resp.Status, string(body))
	}

	// Decode with UseNumber so the sanitizer sees the raw numeric
	// tokens instead of pre-coerced float64s.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("evaluator decode: %w", err)
	}

	logrus.WithField("duration", time.Since(start)).Debug("evaluator call finished")
	return FromRaw(raw), nil
}

// FromRaw maps the evaluator's loosely-typed response onto the fixed
// Evaluation shape, sanitizing every value on the way in.
func FromRaw(raw map[string]interface{}) *Evaluation {
	clean, _ := Sanitize(raw).(map[string]interface{})
	if clean == nil {
		clean = map[string]interface{}{}
	}
	return &Evaluation{
		Transcript:        Text(clean["transcript"], ""),
		OverallMarks:      Number(clean["overall_marks"]),
		OverallPercentage: Number(clean["overall_percentage"]),
		EmotionDetected:   Text(clean["emotion_detected"], "neutral"),
		EmotionDetails:    ObjectField(clean, "emotion_details"),
		Sentiment:         Text(clean["sentiment"], "neutral"),
		Feedback:          Text(clean["feedback"], ""),
		Breakdown:         ObjectField(clean, "breakdown"),
		SkillScores:       NumberMap(clean, "skill_scores"),
		VoiceAnalysis:     ObjectField(clean, "voice_analysis"),
		Keywords:          ObjectField(clean, "keywords"),
	}
}

func attachFile(w *multipart.Writer, field, path string) error {
	fw, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	_, err = io.Copy(fw, fd)
	return err
}

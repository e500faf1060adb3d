package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/infrastructure/ai"

	"github.com/sirupsen/logrus"
)

const (
	sentimentTemperature = 0.3
	sentimentMaxTokens   = 500
	medicalTemperature   = 0.7
	medicalMaxTokens     = 2048

	notSpecified = "Not specified"
)

// Durations after which symptoms count as persistent.
var persistentDurations = map[string]bool{
	"1-week":  true,
	"2-weeks": true,
	"1-month": true,
	"chronic": true,
}

// Result is generated text plus whether it came from a local fallback
// instead of the model.
type Result struct {
	Text     string
	Fallback bool
}

// AssistantService wraps every AI-backed feature. A failing model call never
// surfaces as an error: each method degrades to a static or heuristic answer.
type AssistantService interface {
	AnalyzeSentiment(ctx context.Context, feedback entity.Feedback) entity.SentimentAnalysis
	SummarizeNotes(ctx context.Context, notes string) Result
	HealthReport(ctx context.Context, patient entity.User, conversationSummary string) Result
	TriageSymptoms(ctx context.Context, patient entity.User, symptoms, severity, duration string) Result
	PrescriptionSafety(ctx context.Context, patient entity.User, prescription entity.Prescription) Result
}

type assistantService struct {
	client ai.Client
	log    *logrus.Logger
	now    func() time.Time
}

func NewAssistantService(client ai.Client, log *logrus.Logger) AssistantService {
	return &assistantService{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

func (s *assistantService) AnalyzeSentiment(ctx context.Context, feedback entity.Feedback) entity.SentimentAnalysis {
	text, err := s.client.Complete(ctx, ai.Request{
		System:      sentimentSystemPrompt,
		Prompt:      fmt.Sprintf(sentimentPrompt, feedback.Rating, feedback.Type, feedback.Comments),
		Temperature: sentimentTemperature,
		MaxTokens:   sentimentMaxTokens,
	})
	if err != nil {
		s.log.Warnf("Failed to analyze sentiment of feedback %s: %+v", feedback.ID, err)
		analysis := sentimentFromRating(feedback.Rating)
		analysis.FeedbackID = feedback.ID
		analysis.AnalyzedAt = s.now()
		return analysis
	}

	analysis := ParseSentiment(text)
	analysis.FeedbackID = feedback.ID
	analysis.AnalyzedAt = s.now()
	return analysis
}

func (s *assistantService) SummarizeNotes(ctx context.Context, notes string) Result {
	return s.medical(ctx, "summarize notes", fmt.Sprintf(summaryPrompt, notes), medicalSystemPrompt, func() string {
		return summaryFallback
	})
}

func (s *assistantService) HealthReport(ctx context.Context, patient entity.User, conversationSummary string) Result {
	prompt := fmt.Sprintf(healthReportPrompt,
		patient.Name,
		orDefault(ageText(patient.Age), notSpecified),
		orDefault(patient.BloodGroup, notSpecified),
		orDefault(patient.MedicalHistory, "None recorded"),
		orDefault(patient.Allergies, "None recorded"),
		conversationSummary,
	)
	return s.medical(ctx, "generate health report", prompt, medicalSystemPrompt, func() string {
		return healthReportFallback
	})
}

func (s *assistantService) TriageSymptoms(ctx context.Context, patient entity.User, symptoms, severity, duration string) Result {
	prompt := fmt.Sprintf(symptomPrompt,
		symptoms, severity, duration,
		orDefault(ageText(patient.Age), notSpecified),
		orDefault(patient.Allergies, "None recorded"),
	)
	return s.medical(ctx, "analyze symptoms", prompt, medicalSystemPrompt, func() string {
		return TriageFallback(severity, duration)
	})
}

func (s *assistantService) PrescriptionSafety(ctx context.Context, patient entity.User, prescription entity.Prescription) Result {
	var lines strings.Builder
	for _, m := range prescription.Medicines {
		fmt.Fprintf(&lines, "- %s, %s, %s for %s\n", m.Name, m.Dosage, m.Frequency, m.Duration)
	}
	prompt := fmt.Sprintf(safetyPrompt,
		patient.Name,
		orDefault(ageText(patient.Age), notSpecified),
		orDefault(patient.Allergies, "None recorded"),
		orDefault(patient.MedicalHistory, "None recorded"),
		lines.String(),
	)
	return s.medical(ctx, "check prescription safety", prompt, pharmacySystemPrompt, func() string {
		return safetyFallback
	})
}

func (s *assistantService) medical(ctx context.Context, task, prompt, system string, fallback func() string) Result {
	text, err := s.client.Complete(ctx, ai.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: medicalTemperature,
		MaxTokens:   medicalMaxTokens,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		s.log.Warnf("Failed to %s, using fallback: %+v", task, err)
		return Result{Text: fallback(), Fallback: true}
	}
	return Result{Text: text}
}

// TriageFallback is the local recommendation used when symptom analysis fails.
func TriageFallback(severity, duration string) string {
	switch {
	case severity == "severe":
		return severeSymptomAdvice
	case persistentDurations[duration]:
		return persistentSymptomAdvice
	default:
		return generalSymptomAdvice
	}
}

type sentimentJSON struct {
	Sentiment      string   `json:"sentiment"`
	Tone           string   `json:"tone"`
	Topics         []string `json:"topics"`
	Urgency        string   `json:"urgency"`
	ActionRequired bool     `json:"actionRequired"`
}

// ParseSentiment reads the first JSON object in text. When the model did not
// answer with usable JSON it falls back to scanning for the sentiment words.
func ParseSentiment(text string) entity.SentimentAnalysis {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var parsed sentimentJSON
		if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil && parsed.Sentiment != "" {
			return entity.SentimentAnalysis{
				Sentiment:      parsed.Sentiment,
				Tone:           parsed.Tone,
				Topics:         parsed.Topics,
				Urgency:        parsed.Urgency,
				ActionRequired: parsed.ActionRequired,
			}
		}
	}

	sentiment := "Neutral"
	switch {
	case strings.Contains(text, "Positive"):
		sentiment = "Positive"
	case strings.Contains(text, "Negative"):
		sentiment = "Negative"
	}
	return entity.SentimentAnalysis{
		Sentiment: sentiment,
		Tone:      "Unknown",
		Topics:    []string{},
		Urgency:   "Low",
		Raw:       text,
	}
}

// sentimentFromRating labels a feedback by its star rating alone.
func sentimentFromRating(rating int) entity.SentimentAnalysis {
	analysis := entity.SentimentAnalysis{
		Sentiment: "Neutral",
		Tone:      "Unknown",
		Topics:    []string{},
		Urgency:   "Low",
		Fallback:  true,
	}
	switch {
	case rating >= 4:
		analysis.Sentiment = "Positive"
	case rating <= 2:
		analysis.Sentiment = "Negative"
		analysis.Urgency = "Medium"
		analysis.ActionRequired = true
	}
	return analysis
}

func ageText(age int) string {
	if age <= 0 {
		return ""
	}
	return strconv.Itoa(age)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

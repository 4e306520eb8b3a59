package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"nexacrm/internal/model"
)

// Input limits, in runes. Long payloads are truncated, never rejected.
const (
	maxSummarizeNotes = 6000
	maxPredictDesc    = 4000
	maxAdviseNotes    = 4000
	maxAdviseExtra    = 2000
)

const (
	summarizeSystemPrompt = "Eres un asistente para CRM. Resume de forma clara y concisa (3-5 oraciones) el siguiente historial de interacciones para contexto de ventas. Responde en español con tono profesional."
	predictSystemPrompt   = "Eres un analista de ventas. Estima la probabilidad de cierre (0-100%) basándote en la descripción y señales.\nDevuelve solo un número entero entre 0 y 100."
	adviseSystemPrompt    = "Eres un asesor comercial experto. Analiza el perfil y notas de un cliente y propone próximos pasos accionables (3-7 bullets), riesgos y tono recomendado. Responde en español, conciso."
)

var probabilityPattern = regexp.MustCompile(`\d{1,3}`)

// ContactProfile is the slice of a contact the advisory prompt needs.
type ContactProfile struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// Service renders the CRM prompt templates and delegates completion to the
// configured provider.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

func NewService(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Summarize condenses an interaction history into a short sales summary.
func (s *Service) Summarize(ctx context.Context, notes string) (string, error) {
	userPrompt := "Notas del historial:\n" + truncate(notes, maxSummarizeNotes)
	summary, err := s.completer.Complete(ctx, summarizeSystemPrompt, userPrompt, CompleteOptions{
		Temperature: 0.4,
		MaxTokens:   220,
	})
	if err != nil {
		return "", &GatewayError{Op: "summarize", Err: err}
	}
	return summary, nil
}

// Predict estimates a closing probability for an opportunity. The reply is
// parsed for its first 1-3 digit run and clamped to [0, 100]; anything
// unparsable yields 0.
func (s *Service) Predict(ctx context.Context, description string, value float64) (int, error) {
	userPrompt := fmt.Sprintf(
		"Descripcion: %s\nValor: %v\nPregunta: Analiza esta oportunidad y devuelve SOLO el porcentaje estimado (0-100).",
		truncate(description, maxPredictDesc), value,
	)
	reply, err := s.completer.Complete(ctx, predictSystemPrompt, userPrompt, CompleteOptions{
		Temperature: 0.2,
		MaxTokens:   10,
	})
	if err != nil {
		return 0, &GatewayError{Op: "predict", Err: err}
	}

	match := probabilityPattern.FindString(reply)
	if match == "" {
		s.logger.Warn("ai predict reply had no number", zap.String("reply", reply))
		return 0, nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, nil
	}
	return model.ClampProbability(n), nil
}

// Advise proposes next steps for working a contact.
func (s *Service) Advise(ctx context.Context, contact ContactProfile, opportunityDescription string) (string, error) {
	name := contact.Name
	if name == "" {
		name = "cliente"
	}
	userPrompt := fmt.Sprintf(
		"Cliente: %s\nEmpresa: %s\nEstado: %s\nNotas:\n%s\nContexto adicional:\n%s",
		name, contact.Company, contact.Status,
		truncate(contact.Notes, maxAdviseNotes),
		truncate(opportunityDescription, maxAdviseExtra),
	)
	advice, err := s.completer.Complete(ctx, adviseSystemPrompt, userPrompt, CompleteOptions{
		Temperature: 0.4,
		MaxTokens:   400,
	})
	if err != nil {
		return "", &GatewayError{Op: "advise", Err: err}
	}
	return advice, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

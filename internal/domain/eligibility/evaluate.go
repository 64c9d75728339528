package eligibility

import (
	"fmt"
	"strings"
	"time"

	"kennel-scheduler/internal/domain/records"
)

// Indicator resume el estado de la evaluación de comportamiento.
// Vacío cuando la habitación no exige evaluación.
// @Enum valid, expired, failed, missing
type Indicator string

const (
	IndicatorNone    Indicator = ""
	IndicatorValid   Indicator = "valid"
	IndicatorExpired Indicator = "expired"
	IndicatorFailed  Indicator = "failed"
	IndicatorMissing Indicator = "missing"
)

const (
	ReasonMissingVaccination = "Missing vaccination record"
	ReasonMissingEvaluation  = "Missing evaluation"
	ReasonExpiredEvaluation  = "Evaluation expired"
)

type Input struct {
	Vaccinations      []records.Vaccination
	Evaluations       []records.Evaluation
	RequireEvaluation bool
}

type Result struct {
	Eligible            bool
	Reasons             []string
	EvaluationIndicator Indicator
}

// Evaluate es pura: el resultado depende sólo de los documentos recibidos.
func Evaluate(in Input) Result {
	reasons := make([]string, 0, 2)

	// Vacunas: alcanza con que exista un documento.
	vaccinated := len(in.Vaccinations) > 0
	if !vaccinated {
		reasons = append(reasons, ReasonMissingVaccination)
	}

	indicator := IndicatorNone
	evalBlocked := false
	if in.RequireEvaluation {
		latest, ok := LatestEvaluation(in.Evaluations)
		switch {
		case !ok:
			indicator = IndicatorMissing
			reasons = append(reasons, ReasonMissingEvaluation)
			evalBlocked = true
		case latest.IsExpired:
			indicator = IndicatorExpired
			reasons = append(reasons, ReasonExpiredEvaluation)
			evalBlocked = true
		case latest.Status != records.EvaluationPassed:
			indicator = IndicatorFailed
			reasons = append(reasons, fmt.Sprintf("Evaluation status: %s", latest.Status))
			evalBlocked = true
		default:
			indicator = IndicatorValid
		}
	}

	return Result{
		Eligible:            vaccinated && !evalBlocked,
		Reasons:             reasons,
		EvaluationIndicator: indicator,
	}
}

var evaluatedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEvaluatedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range evaluatedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestEvaluation devuelve la evaluación con EvaluatedAt más reciente.
// Un timestamp vacío o ilegible cuenta como el más antiguo posible; ante empate gana la primera.
func LatestEvaluation(evals []records.Evaluation) (records.Evaluation, bool) {
	if len(evals) == 0 {
		return records.Evaluation{}, false
	}

	best := 0
	bestAt, bestOK := parseEvaluatedAt(evals[0].EvaluatedAt)
	for i := 1; i < len(evals); i++ {
		at, ok := parseEvaluatedAt(evals[i].EvaluatedAt)
		if !ok {
			continue
		}
		if !bestOK || at.After(bestAt) {
			best, bestAt, bestOK = i, at, true
		}
	}
	return evals[best], true
}

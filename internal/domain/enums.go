package domain

type PlanType string

const (
	PlanStudy   PlanType = "study"
	PlanQuiz    PlanType = "quiz"
	PlanProject PlanType = "project"
	PlanReview  PlanType = "review"
)

// ValidPlanTypes is the canonical set of accepted plan type strings.
var ValidPlanTypes = map[string]bool{
	"study": true, "quiz": true, "project": true, "review": true,
}

type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
	ProviderKakao  AuthProvider = "kakao"
	ProviderLocal  AuthProvider = ""
)

package domain

// Decision is the outcome of a risk or AML evaluation.
type Decision string

const (
	DecisionAllow  Decision = "ALLOW"
	DecisionReview Decision = "REVIEW"
	DecisionBlock  Decision = "BLOCK"
)

// ReviewReasonRiskOrAml is carried in PaymentReviewRequired payloads.
const ReviewReasonRiskOrAml = "risk_or_aml_review"

// ResolveStatus maps a (risk, aml) decision pair to the terminal admission
// status. BLOCK dominates REVIEW dominates ALLOW, independent of order.
func ResolveStatus(risk, aml Decision) PaymentStatus {
	if risk == DecisionBlock || aml == DecisionBlock {
		return StatusBlocked
	}
	if risk == DecisionReview || aml == DecisionReview {
		return StatusInReview
	}
	return StatusReceived
}

package pipeline

// State tracks a pipeline invocation through its stages. Every stage failure
// except OCR transport failure advances the machine: a stage that finds
// nothing produces an absent value and moves on.
type State string

const (
	StateIdle            State = "idle"
	StateOCRRequested    State = "ocr_requested"
	StateTextNormalized  State = "text_normalized"
	StateTypeClassified  State = "type_classified"
	StateIssuerResolved  State = "issuer_resolved"
	StateFieldsExtracted State = "fields_extracted"
	StateScored          State = "scored"
	StateDone            State = "done"

	// StateFailedOCR is the only terminal failure state, reachable only from
	// StateOCRRequested. Retry policy belongs to the OCR collaborator.
	StateFailedOCR State = "failed_ocr"
)

// stateWalk seeds the state progression for one invocation. OCRRequested is
// present only when the run actually called the OCR collaborator.
func stateWalk(viaOCR bool) []State {
	states := []State{StateIdle}
	if viaOCR {
		states = append(states, StateOCRRequested)
	}
	return states
}

func stateStrings(states []State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

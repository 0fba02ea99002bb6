package homeassistant

// TestResult is the outcome of a single delivery or connection-test
// attempt, as shown to the user. It is transient and never persisted.
type TestResult struct {
	Success bool
	Message string
}

// stateWord maps meeting presence to the Home Assistant on/off vocabulary.
func stateWord(inMeeting bool) string {
	if inMeeting {
		return "on"
	}
	return "off"
}

// serviceCallBody is the JSON body of an input_boolean service invocation.
type serviceCallBody struct {
	EntityID string `json:"entity_id"`
}

// stateSetBody is the JSON body of a direct state write.
type stateSetBody struct {
	State string `json:"state"`
}

// webhookBody is the JSON body posted to a webhook trigger.
type webhookBody struct {
	Value string `json:"value"`
}

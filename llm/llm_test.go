package llm

import "testing"

func TestUsageDefaultsToZero(t *testing.T) {
	u := Usage{}
	if u.InputTokens != 0 || u.OutputTokens != 0 || u.TotalTokens != 0 {
		t.Errorf("expected zero usage, got %+v", u)
	}
}

func TestRequestCarriesTemperature(t *testing.T) {
	req := Request{Model: "gpt-4o", Temperature: 0.8}
	if req.Temperature != 0.8 {
		t.Errorf("expected Temperature 0.8, got %f", req.Temperature)
	}
}

package errors

import (
	"net/http"
	"testing"
)

func TestEnvelopeOmitsEmptyDetails(t *testing.T) {
	body := BadRequest("goal_required", "set a race goal").Envelope()
	inner, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %#v", body)
	}
	if inner["code"] != "goal_required" {
		t.Fatalf("unexpected code %v", inner["code"])
	}
	if _, present := inner["details"]; present {
		t.Fatal("expected no details key")
	}
}

func TestUnprocessableEntityCarriesDetails(t *testing.T) {
	apiErr := UnprocessableEntity("import_failed", "nothing imported", []string{"a.gpx"})
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", apiErr.Status)
	}
	inner := apiErr.Envelope()["error"].(map[string]interface{})
	if _, present := inner["details"]; !present {
		t.Fatal("expected details key")
	}
}

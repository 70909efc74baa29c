package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamo down")
	e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(e, cause) {
		t.Fatalf("expected wrapped cause to match")
	}
	body := e.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" || body.Details != nil {
		t.Fatalf("unexpected body: %+v", body)
	}

	d := NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest).WithDetails([]string{"password is required"})
	if d.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", d.HTTPStatus)
	}
	if got := d.ToHTTPError().Details.([]string); len(got) != 1 {
		t.Fatalf("unexpected details: %+v", got)
	}
	if d.Error() != "VALIDATION_ERROR: Invalid request" {
		t.Fatalf("unexpected message: %s", d.Error())
	}
}

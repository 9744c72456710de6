// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package validation

import (
	"strings"
	"testing"
)

type feedbackRequest struct {
	UserID        string `validate:"required"`
	DestinationID string `validate:"required"`
	Rating        int    `validate:"min=1,max=5"`
}

type preferencesRequest struct {
	UserID string `validate:"required"`
	Budget string `validate:"omitempty,oneof=low medium high"`
	Limit  int    `validate:"min=0,max=100"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := feedbackRequest{UserID: "u1", DestinationID: "paris_france", Rating: 4}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_SingleError(t *testing.T) {
	req := feedbackRequest{UserID: "u1", DestinationID: "paris_france", Rating: 9}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %d entries, want 1", len(errs))
	}
	if errs[0].Field() != "Rating" {
		t.Errorf("Field() = %q, want Rating", errs[0].Field())
	}
	if errs[0].Tag() != "max" {
		t.Errorf("Tag() = %q, want max", errs[0].Tag())
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "at most 5") {
		t.Errorf("Message = %q, want min/max translation", apiErr.Message)
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	req := feedbackRequest{Rating: 0}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	if len(err.Errors()) != 3 {
		t.Fatalf("Errors() = %d entries, want 3", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("ToAPIError() missing fields detail for multiple errors")
	}
	if !strings.Contains(apiErr.Message, "UserID is required") {
		t.Errorf("Message = %q, want required translation", apiErr.Message)
	}
}

func TestValidateStruct_OneOf(t *testing.T) {
	req := preferencesRequest{UserID: "u1", Budget: "lavish"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := err.Errors()[0].Tag(); got != "oneof" {
		t.Errorf("Tag() = %q, want oneof", got)
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("Error() = %q, want oneof translation", err.Error())
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

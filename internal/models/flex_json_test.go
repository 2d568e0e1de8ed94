package models

import (
	"encoding/json"
	"testing"
)

func TestFlexFloat_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "Native number", input: `{"budget": 250.5}`, want: 250.5},
		{name: "Quoted number", input: `{"budget": "250"}`, want: 250},
		{name: "Quoted with thousands separator", input: `{"budget": "1,250"}`, want: 1250},
		{name: "Quoted with spaces", input: `{"budget": " 40 "}`, want: 40},
		{name: "Word", input: `{"budget": "lots"}`, wantErr: true},
		{name: "Empty string", input: `{"budget": ""}`, wantErr: true},
		{name: "Boolean", input: `{"budget": true}`, wantErr: true},
		{name: "Quoted infinity", input: `{"budget": "Inf"}`, wantErr: true},
		{name: "Lowercase infinity", input: `{"budget": "-inf"}`, wantErr: true},
		{name: "Quoted NaN", input: `{"budget": "NaN"}`, wantErr: true},
		{name: "Overflow", input: `{"budget": "1e999"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req OptimizationRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got budget %v", tt.input, req.BudgetValue())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if got := req.BudgetValue(); got != tt.want {
				t.Errorf("BudgetValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexFloat_MissingBudget(t *testing.T) {
	var req OptimizationRequest
	if err := json.Unmarshal([]byte(`{"scope": "both"}`), &req); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if req.Budget != nil {
		t.Errorf("Budget = %v, want nil", *req.Budget)
	}
	if req.BudgetValue() != 0 {
		t.Errorf("BudgetValue() = %v, want 0", req.BudgetValue())
	}
}

func TestFlexFloat_Marshal(t *testing.T) {
	data, err := json.Marshal(FlexFloat(12.5))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != "12.5" {
		t.Errorf("Marshal = %s, want 12.5", data)
	}
}

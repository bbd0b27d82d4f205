package handler

import (
	"encoding/json"
	"testing"
)

func TestFormNumber_AcceptsNumberAndString(t *testing.T) {
	var req updateMaterialRequest
	if err := json.Unmarshal([]byte(`{"ratePerCuMetre":10.5,"stock":"25"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.RatePerCuMetre == nil || string(*req.RatePerCuMetre) != "10.5" {
		t.Fatalf("number not preserved: %+v", req.RatePerCuMetre)
	}
	if req.Stock == nil || string(*req.Stock) != "25" {
		t.Fatalf("string not preserved: %+v", req.Stock)
	}
}

func TestFormNumber_AbsentFieldsStayNil(t *testing.T) {
	var req updateMaterialRequest
	if err := json.Unmarshal([]byte(`{"name":"Sand"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.RatePerCuMetre != nil || req.Stock != nil || req.Unit != nil {
		t.Fatalf("absent fields bound: %+v", req)
	}
	if req.Name == nil || *req.Name != "Sand" {
		t.Fatalf("name not bound: %+v", req.Name)
	}
}

func TestFormNumber_NonNumericTextPreservedForServiceRejection(t *testing.T) {
	// Coercion policy lives in the service; the binding only captures raw text.
	var req updateMaterialRequest
	if err := json.Unmarshal([]byte(`{"stock":"lots"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Stock == nil || string(*req.Stock) != "lots" {
		t.Fatalf("raw text not preserved: %+v", req.Stock)
	}
}

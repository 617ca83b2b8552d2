package entity

import "testing"

func TestFeeStructureComputeTotal(t *testing.T) {
	fee := FeeStructure{Class: "9", TuitionFee: 100, LibraryFee: 10, SportsFee: 5, LabFee: 5, ExamFee: 10, TotalFee: 1}
	fee.ComputeTotal()
	if fee.TotalFee != 130 {
		t.Fatalf("expected 130, got %v", fee.TotalFee)
	}

	fee.TuitionFee = 200
	fee.ComputeTotal()
	if fee.TotalFee != 230 {
		t.Fatalf("expected 230, got %v", fee.TotalFee)
	}
}

package errors

import (
	"testing"
)

func TestValidateXref(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "@I1@", false},
		{"valid long", "@I1234567890@", false},
		{"valid underscore", "@P_12@", false},

		{"empty", "", true},
		{"too long", "@I12345678901234567890@", true},
		{"missing at", "I1", true},
		{"only ats", "@@", true},
		{"inner at", "@I@1@", true},
		{"space", "@I 1@", true},
		{"control char", "@I\x011@", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateXref(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateXref(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidXref {
				t.Errorf("ValidateXref(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidXref)
			}
		})
	}
}

func TestValidateGenerations(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{1, false}, {8, false}, {MaxGenerations, false},
		{0, true}, {-1, true}, {MaxGenerations + 1, true},
	}
	for _, tt := range tests {
		err := ValidateGenerations(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGenerations(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFanAngle(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{180, false}, {270, false}, {360, false},
		{0, true}, {-90, true}, {361, true},
	}
	for _, tt := range tests {
		err := ValidateFanAngle(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFanAngle(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateFanAngle(%d) code = %v", tt.input, GetCode(err))
		}
	}
}

func TestValidateWeights(t *testing.T) {
	if err := ValidateWeights([]float64{0.95, 0.86, 0.74, 0.5}); err != nil {
		t.Errorf("ValidateWeights() error = %v", err)
	}
	if err := ValidateWeights([]float64{0.95, 0, 0.74, 0.5}); err == nil {
		t.Error("ValidateWeights() should reject a zero weight")
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(10, 10); err != nil {
		t.Errorf("ValidateSize() error = %v", err)
	}
	if err := ValidateSize(11, 10); !Is(err, ErrCodeTooLarge) {
		t.Errorf("ValidateSize() error = %v, want %v", err, ErrCodeTooLarge)
	}
}

package service

import (
	"math"
	"testing"

	"marinaops_backend/internal/catalog/repository"
)

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]bool
		required []string
		want     float64
	}{
		{
			name:     "no required fields is always complete",
			fields:   map[string]bool{},
			required: nil,
			want:     1.0,
		},
		{
			name: "all required fields done",
			fields: map[string]bool{
				repository.FieldUnitIdentification: true,
				repository.FieldPhotoEvidence:      true,
			},
			required: []string{repository.FieldUnitIdentification, repository.FieldPhotoEvidence},
			want:     1.0,
		},
		{
			name: "two of three required fields",
			fields: map[string]bool{
				repository.FieldUnitIdentification:   true,
				repository.FieldPhotoEvidence:        true,
				repository.FieldLocationConfirmation: false,
			},
			required: []string{
				repository.FieldUnitIdentification,
				repository.FieldPhotoEvidence,
				repository.FieldLocationConfirmation,
			},
			want: 2.0 / 3.0,
		},
		{
			name:   "nothing done",
			fields: map[string]bool{},
			required: []string{
				repository.FieldUnitIdentification,
				repository.FieldPhotoEvidence,
			},
			want: 0,
		},
		{
			name: "extra completed fields outside the required set do not count",
			fields: map[string]bool{
				repository.FieldConsumablesLogged: true,
				repository.FieldLaborHoursLogged:  true,
			},
			required: []string{repository.FieldUnitIdentification},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Completeness(tt.fields, tt.required)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Completeness() = %v, want %v", got, tt.want)
			}
		})
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Submission
		wantErr error
	}{
		{
			name:    "valid report",
			sub:     Submission{Type: SubmissionReport, Description: "pothole", Location: "Main St"},
			wantErr: nil,
		},
		{
			name:    "valid suggestion",
			sub:     Submission{Type: SubmissionSuggestion, Description: "benches", Subject: "Park"},
			wantErr: nil,
		},
		{
			name:    "report without location",
			sub:     Submission{Type: SubmissionReport, Description: "pothole"},
			wantErr: ErrMissingLocation,
		},
		{
			name:    "suggestion without subject",
			sub:     Submission{Type: SubmissionSuggestion, Description: "benches"},
			wantErr: ErrMissingSubject,
		},
		{
			name:    "missing description",
			sub:     Submission{Type: SubmissionReport, Location: "Main St"},
			wantErr: ErrMissingDescription,
		},
		{
			name:    "unknown type",
			sub:     Submission{Type: "complaint", Description: "hmm"},
			wantErr: ErrUnknownSubmissionType,
		},
		{
			name: "variant fields do not cross over",
			// A subject does not satisfy a report's location requirement.
			sub:     Submission{Type: SubmissionReport, Description: "pothole", Subject: "Streets"},
			wantErr: ErrMissingLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

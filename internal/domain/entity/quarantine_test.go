package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuarantineRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  QuarantineRecord
		wantErr bool
	}{
		{
			name: "valid record",
			record: QuarantineRecord{
				ClusterHash:  "abc123",
				ErrorReasons: []string{"severity out of range"},
			},
			wantErr: false,
		},
		{
			name:    "missing clusterHash",
			record:  QuarantineRecord{ErrorReasons: []string{"bad json"}},
			wantErr: true,
		},
		{
			name:    "missing errorReasons",
			record:  QuarantineRecord{ClusterHash: "abc123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuarantineRecord_NotUniqueByDesign(t *testing.T) {
	first := QuarantineRecord{ClusterHash: "abc123", ErrorReasons: []string{"low confidence"}}
	second := QuarantineRecord{ClusterHash: "abc123", ErrorReasons: []string{"missing actors"}}

	assert.NoError(t, first.Validate())
	assert.NoError(t, second.Validate())
	assert.Equal(t, first.ClusterHash, second.ClusterHash)
}

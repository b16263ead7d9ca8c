package numbering

import (
	"testing"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func records(challans ...string) []entity.DeliveryRecord {
	out := make([]entity.DeliveryRecord, 0, len(challans))
	for _, c := range challans {
		out = append(out, entity.DeliveryRecord{ChallanNumber: c})
	}
	return out
}

func TestNextChallanNumber(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		records []entity.DeliveryRecord
		want    string
	}{
		{
			name:    "empty record set starts at 001",
			year:    2025,
			records: nil,
			want:    "JME/2025/001",
		},
		{
			name:    "increments highest suffix",
			year:    2025,
			records: records("JME/2025/001", "JME/2025/007", "JME/2025/003"),
			want:    "JME/2025/008",
		},
		{
			name:    "other years ignored",
			year:    2025,
			records: records("JME/2024/120", "JME/2025/002"),
			want:    "JME/2025/003",
		},
		{
			name:    "foreign numbering schemes ignored",
			year:    2025,
			records: records("AUTO/NOV25/14", "JME/2025/005"),
			want:    "JME/2025/006",
		},
		{
			name:    "gap from deleted record is not reused",
			year:    2025,
			records: records("JME/2025/009"),
			want:    "JME/2025/010",
		},
		{
			name:    "suffix grows past three digits",
			year:    2025,
			records: records("JME/2025/999"),
			want:    "JME/2025/1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextChallanNumber(DefaultScheme, tt.year, tt.records)
			assert.Equal(t, tt.want, got)
		})
	}
}

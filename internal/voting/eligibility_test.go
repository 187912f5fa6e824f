package voting

import (
	"testing"

	"campus-vote/internal/database"

	"github.com/stretchr/testify/assert"
)

func TestIsEligible(t *testing.T) {
	voter := Voter{
		ID:            7,
		Department:    "Computer Science",
		ClassLevel:    "300",
		Organizations: []int64{4, 9},
	}

	tests := []struct {
		name     string
		election database.Election
		want     bool
	}{
		{
			name:     "universal election admits everyone",
			election: database.Election{IsUniversal: true},
			want:     true,
		},
		{
			name:     "department match",
			election: database.Election{EligibleDepartments: database.StringList{"Law", "Computer Science"}},
			want:     true,
		},
		{
			name:     "class level match",
			election: database.Election{EligibleClassLevels: database.StringList{"300", "400"}},
			want:     true,
		},
		{
			name:     "manual voter id match",
			election: database.Election{EligibleVoterIDs: database.Int64List{3, 7}},
			want:     true,
		},
		{
			name:     "organization membership match",
			election: database.Election{EligibleOrganizations: database.Int64List{9}},
			want:     true,
		},
		{
			name: "one matching rule is enough",
			election: database.Election{
				EligibleDepartments: database.StringList{"Law"},
				EligibleClassLevels: database.StringList{"300"},
			},
			want: true,
		},
		{
			name: "no rule matches",
			election: database.Election{
				EligibleDepartments:   database.StringList{"Law"},
				EligibleClassLevels:   database.StringList{"100"},
				EligibleOrganizations: database.Int64List{2},
				EligibleVoterIDs:      database.Int64List{3},
			},
			want: false,
		},
		{
			name:     "restricted election with no rules admits nobody",
			election: database.Election{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(&tt.election, voter))
		})
	}
}

package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordCrackerSim/internal/core/domain"
)

func TestAssessStrength(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		wantLength  int
		wantScore   int
		wantLevel   domain.StrengthLevel
		wantSpecial bool
		wantFeed    []string
	}{
		{
			name:       "empty password still scores the short rule",
			password:   "",
			wantLength: 0,
			wantScore:  1,
			wantLevel:  domain.StrengthWeak,
			wantFeed:   []string{feedbackShortLength},
		},
		{
			name:        "all classes short",
			password:    "Ab1!",
			wantLength:  4,
			wantScore:   6,
			wantLevel:   domain.StrengthStrong,
			wantSpecial: true,
			wantFeed:    []string{feedbackShortLength, feedbackUpper, feedbackLower, feedbackDigit, feedbackSpecial},
		},
		{
			name:       "eight lowercase letters",
			password:   "password",
			wantLength: 8,
			wantScore:  3,
			wantLevel:  domain.StrengthModerate,
			wantFeed:   []string{feedbackGoodLength, feedbackLower},
		},
		{
			name:        "long mixed password",
			password:    "CorrectHorse9!",
			wantLength:  14,
			wantScore:   9,
			wantLevel:   domain.StrengthVeryStrong,
			wantSpecial: true,
			wantFeed:    []string{feedbackExcellentLength, feedbackUpper, feedbackLower, feedbackDigit, feedbackSpecial},
		},
		{
			name:       "spaces are not special",
			password:   "   ",
			wantLength: 3,
			wantScore:  1,
			wantLevel:  domain.StrengthWeak,
			wantFeed:   []string{feedbackShortLength},
		},
		{
			name:        "non-ASCII letter counts as special",
			password:    "über",
			wantLength:  4,
			wantScore:   4,
			wantLevel:   domain.StrengthModerate,
			wantSpecial: true,
			wantFeed:    []string{feedbackShortLength, feedbackLower, feedbackSpecial},
		},
		{
			name:        "non-ASCII digit is not a digit",
			password:    "٣",
			wantLength:  1,
			wantScore:   3,
			wantLevel:   domain.StrengthModerate,
			wantSpecial: true,
			wantFeed:    []string{feedbackShortLength, feedbackSpecial},
		},
		{
			name:       "exactly twelve digits",
			password:   "123456789012",
			wantLength: 12,
			wantScore:  5,
			wantLevel:  domain.StrengthStrong,
			wantFeed:   []string{feedbackExcellentLength, feedbackDigit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessStrength(tt.password)

			assert.Equal(t, tt.wantLength, got.Length)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLevel, got.Strength)
			assert.Equal(t, tt.wantSpecial, got.HasSpecial)
			assert.Equal(t, tt.wantFeed, got.Feedback)
		})
	}
}

func TestAssessStrength_Deterministic(t *testing.T) {
	for _, pw := range []string{"", "a", "Tr0ub4dor&3", "with space", "\t\n"} {
		assert.Equal(t, AssessStrength(pw), AssessStrength(pw), "password %q", pw)
	}
}

func TestAssessStrength_ScoreIsSumOfFiredRules(t *testing.T) {
	for _, pw := range []string{"", "x", "XY", "12345678", "aB3$aB3$aB3$", "hello world", "ÄÖÜ"} {
		p := AssessStrength(pw)

		fired := 1
		want := 0
		switch {
		case p.Length >= 12:
			want = 4
		case p.Length >= 8:
			want = 2
		default:
			want = 1
		}
		for _, rule := range []struct {
			on     bool
			points int
		}{{p.HasUpper, 1}, {p.HasLower, 1}, {p.HasDigit, 1}, {p.HasSpecial, 2}} {
			if rule.on {
				fired++
				want += rule.points
			}
		}

		require.Len(t, p.Feedback, fired, "password %q", pw)
		assert.Equal(t, want, p.Score, "password %q", pw)
	}
}

func TestStrengthLevelThresholds(t *testing.T) {
	cases := map[int]domain.StrengthLevel{
		0:  domain.StrengthWeak,
		2:  domain.StrengthWeak,
		3:  domain.StrengthModerate,
		4:  domain.StrengthModerate,
		5:  domain.StrengthStrong,
		7:  domain.StrengthStrong,
		8:  domain.StrengthVeryStrong,
		10: domain.StrengthVeryStrong,
	}
	for score, want := range cases {
		assert.Equal(t, want, strengthLevel(score), "score %d", score)
	}
}

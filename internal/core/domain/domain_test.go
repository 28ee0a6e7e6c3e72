package domain

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHardwareTier(t *testing.T) {
	tests := []struct {
		in      string
		want    HardwareTier
		wantErr bool
	}{
		{in: "CPU", want: TierCPU},
		{in: "gpu", want: TierGPU},
		{in: " asic ", want: TierASIC},
		{in: "tpu", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHardwareTier(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfiguration))
				assert.NotEmpty(t, errors.GetAllHints(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargetMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TargetMode
		wantErr bool
	}{
		{in: "average", want: TargetAverageCase},
		{in: "50%", want: TargetAverageCase},
		{in: "AVERAGE_CASE", want: TargetAverageCase},
		{in: "Worst", want: TargetWorstCase},
		{in: "100", want: TargetWorstCase},
		{in: "best", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTargetMode(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHardwareCatalogue(t *testing.T) {
	catalogue := HardwareCatalogue()
	require.Len(t, catalogue, 3)
	assert.Equal(t, 500_000.0, catalogue[0].Rate)
	assert.Equal(t, 10_000_000.0, catalogue[1].Rate)
	assert.Equal(t, 1_000_000_000.0, catalogue[2].Rate)

	catalogue[0].Rate = 1
	p, ok := TierCPU.Profile()
	require.True(t, ok)
	assert.Equal(t, 500_000.0, p.Rate, "catalogue must be returned by copy")
}

func TestTargetModeFactor(t *testing.T) {
	f, ok := TargetAverageCase.Factor()
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	f, ok = TargetWorstCase.Factor()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	_, ok = TargetMode("HALF").Factor()
	assert.False(t, ok)
	assert.Equal(t, "50% (Average Case)", TargetAverageCase.Label())
}

func TestAttackSettingsValidate(t *testing.T) {
	assert.NoError(t, AttackSettings{Hardware: TierGPU, Target: TargetWorstCase}.Validate())

	err := AttackSettings{Hardware: "QPU", Target: TargetWorstCase}.Validate()
	assert.True(t, errors.Is(err, ErrConfiguration))

	err = AttackSettings{Hardware: TierCPU}.Validate()
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestSimulationStateTerminal(t *testing.T) {
	assert.False(t, StateRunning.Terminal())
	assert.True(t, StateFound.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.True(t, StateExhausted.Terminal())
}

func TestCharsetSymbols(t *testing.T) {
	assert.Len(t, CharsetSymbols, 33)
	assert.Len(t, CharsetDefault, 62)
	assert.Equal(t, 95, len(CharsetDefault)+len(CharsetSymbols))
}

func TestMeterPercent(t *testing.T) {
	assert.Equal(t, 0, PasswordProfile{Score: 0}.MeterPercent())
	assert.Equal(t, 60, PasswordProfile{Score: 6}.MeterPercent())
	assert.Equal(t, 100, PasswordProfile{Score: 12}.MeterPercent())
}

func TestKeyspaceSummary(t *testing.T) {
	k := Keyspace{
		Size:              36,
		TotalCombinations: big.NewInt(36),
		Contributions: []Contribution{
			{Count: 26, Label: "26 Lower (a-z)"},
			{Count: 10, Label: "10 Digits (0-9)"},
		},
	}
	assert.Equal(t, "26 Lower (a-z), 10 Digits (0-9)", k.Summary())
}

func TestWrapInvalidInput(t *testing.T) {
	err := WrapInvalidInput("password is empty")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "password is empty")
}

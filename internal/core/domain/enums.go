package domain

import "strings"

type HardwareTier string
type TargetMode string
type SimulationState string
type CrackingAlgorithm string
type StrengthLevel string
type SnapshotKind string

const (
	// Hardware tiers
	TierCPU  HardwareTier = "CPU"
	TierGPU  HardwareTier = "GPU"
	TierASIC HardwareTier = "ASIC"

	// Prediction targets
	TargetAverageCase TargetMode = "AVERAGE_CASE"
	TargetWorstCase   TargetMode = "WORST_CASE"

	// Simulation states
	StateRunning   SimulationState = "RUNNING"
	StateFound     SimulationState = "FOUND"
	StateCancelled SimulationState = "CANCELLED"
	StateExhausted SimulationState = "EXHAUSTED"

	// Cracking Algorithms
	AlgoBruteForce CrackingAlgorithm = "BRUTE_FORCE"

	// Password Strength Levels
	StrengthWeak       StrengthLevel = "Weak"
	StrengthModerate   StrengthLevel = "Moderate"
	StrengthStrong     StrengthLevel = "Strong"
	StrengthVeryStrong StrengthLevel = "Very Strong"

	// Snapshot kinds
	SnapshotInitial   SnapshotKind = "INITIAL"
	SnapshotBenchmark SnapshotKind = "BENCHMARK"
	SnapshotDashboard SnapshotKind = "DASHBOARD"
)

var (
	CharsetLower  = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits = "0123456789"

	// CharsetSymbols is every printable ASCII character that is neither a
	// letter nor a digit, space included: 33 characters.
	CharsetSymbols = "!@#$%^&*()-_+=[]{}|:;\"'<,>.?/`~\\ "
	CharsetDefault = CharsetLower + CharsetUpper + CharsetDigits
)

// HardwareProfile is one entry of the attacker hardware catalogue.
type HardwareProfile struct {
	Tier  HardwareTier
	Label string
	Rate  float64 // attempts per second
}

var hardwareCatalogue = []HardwareProfile{
	{Tier: TierCPU, Label: "CPU (Default PC)", Rate: 500_000},
	{Tier: TierGPU, Label: "GPU (Gaming Card)", Rate: 10_000_000},
	{Tier: TierASIC, Label: "ASIC (Dedicated Hardware)", Rate: 1_000_000_000},
}

// HardwareCatalogue returns the tiers in display order.
func HardwareCatalogue() []HardwareProfile {
	out := make([]HardwareProfile, len(hardwareCatalogue))
	copy(out, hardwareCatalogue)
	return out
}

func (t HardwareTier) Profile() (HardwareProfile, bool) {
	for _, p := range hardwareCatalogue {
		if p.Tier == t {
			return p, true
		}
	}
	return HardwareProfile{}, false
}

// ParseHardwareTier accepts the tier name in any case.
func ParseHardwareTier(s string) (HardwareTier, error) {
	tier := HardwareTier(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := tier.Profile(); !ok {
		return "", WrapConfigurationError("unknown hardware tier %q", s)
	}
	return tier, nil
}

func (m TargetMode) Factor() (float64, bool) {
	switch m {
	case TargetAverageCase:
		return 0.5, true
	case TargetWorstCase:
		return 1.0, true
	default:
		return 0, false
	}
}

func (m TargetMode) Label() string {
	switch m {
	case TargetAverageCase:
		return "50% (Average Case)"
	case TargetWorstCase:
		return "100% (Worst Case)"
	default:
		return string(m)
	}
}

// ParseTargetMode accepts "average", "worst" or the enum values.
func ParseTargetMode(s string) (TargetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "avg", "50", "50%", "average_case":
		return TargetAverageCase, nil
	case "worst", "100", "100%", "worst_case":
		return TargetWorstCase, nil
	}
	return "", WrapConfigurationError("unknown target mode %q", s)
}

func (s SimulationState) Terminal() bool {
	return s == StateFound || s == StateCancelled || s == StateExhausted
}

type CrackingError string

const (
	ErrInvalidInput     CrackingError = "INVALID_INPUT"
	ErrConfiguration    CrackingError = "CONFIGURATION_ERROR"
	ErrSimulationActive CrackingError = "SIMULATION_ACTIVE"
	ErrJobNotFound      CrackingError = "JOB_NOT_FOUND"
)

func (e CrackingError) Error() string {
	return string(e)

}

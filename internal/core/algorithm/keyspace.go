package algorithm

import (
	"fmt"
	"math/big"
	"strings"

	"passwordCrackerSim/internal/core/domain"
)

// BuildKeyspace turns the character classes of a profile into the alphabet an
// attacker would have to search, plus the total number of candidates of the
// password's length.
func BuildKeyspace(password string, profile domain.PasswordProfile) domain.Keyspace {
	alphabet := make([]byte, 0, 96)
	var contributions []domain.Contribution

	add := func(charset, label string) {
		alphabet = append(alphabet, charset...)
		contributions = append(contributions, domain.Contribution{Count: len(charset), Label: label})
	}

	if profile.HasLower {
		add(domain.CharsetLower, "26 Lower (a-z)")
	}
	if profile.HasUpper {
		add(domain.CharsetUpper, "26 Upper (A-Z)")
	}
	if profile.HasDigit {
		add(domain.CharsetDigits, "10 Digits (0-9)")
	}
	if profile.HasSpecial {
		add(domain.CharsetSymbols, fmt.Sprintf("%d Symbols", len(domain.CharsetSymbols)))
	}

	// Space is whitespace, so it never counts as special, yet it still has
	// to be guessable.
	if strings.ContainsRune(password, ' ') && !strings.ContainsRune(string(alphabet), ' ') {
		add(" ", "1 Space")
	}

	if len(alphabet) == 0 {
		add(domain.CharsetDefault, fmt.Sprintf("%d Default (a-z, A-Z, 0-9)", len(domain.CharsetDefault)))
	}

	size := len(alphabet)
	total := new(big.Int).Exp(big.NewInt(int64(size)), big.NewInt(int64(profile.Length)), nil)

	return domain.Keyspace{
		Alphabet:          alphabet,
		Size:              size,
		TotalCombinations: total,
		Contributions:     contributions,
	}
}

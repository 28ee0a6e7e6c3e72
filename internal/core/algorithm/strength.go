package algorithm

import (
	"unicode"
	"unicode/utf8"

	"passwordCrackerSim/internal/core/domain"
)

const (
	feedbackExcellentLength = "Excellent length (12+ characters)"
	feedbackGoodLength      = "Good length (8-11 characters)"
	feedbackShortLength     = "Short length (less than 8 characters)"
	feedbackUpper           = "Includes uppercase letters"
	feedbackLower           = "Includes lowercase letters"
	feedbackDigit           = "Includes numbers"
	feedbackSpecial         = "Includes special characters"
)

// AssessStrength scores a password and reports which character classes it
// uses. It is pure and accepts any string, including the empty one.
func AssessStrength(password string) domain.PasswordProfile {
	profile := domain.PasswordProfile{
		Length:   utf8.RuneCountInString(password),
		Feedback: make([]string, 0, 5),
	}

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			profile.HasUpper = true
		case r >= 'a' && r <= 'z':
			profile.HasLower = true
		case r >= '0' && r <= '9':
			profile.HasDigit = true
		case !unicode.IsSpace(r):
			profile.HasSpecial = true
		}
	}

	switch {
	case profile.Length >= 12:
		profile.Score += 4
		profile.Feedback = append(profile.Feedback, feedbackExcellentLength)
	case profile.Length >= 8:
		profile.Score += 2
		profile.Feedback = append(profile.Feedback, feedbackGoodLength)
	default:
		profile.Score++
		profile.Feedback = append(profile.Feedback, feedbackShortLength)
	}

	if profile.HasUpper {
		profile.Score++
		profile.Feedback = append(profile.Feedback, feedbackUpper)
	}
	if profile.HasLower {
		profile.Score++
		profile.Feedback = append(profile.Feedback, feedbackLower)
	}
	if profile.HasDigit {
		profile.Score++
		profile.Feedback = append(profile.Feedback, feedbackDigit)
	}
	if profile.HasSpecial {
		profile.Score += 2
		profile.Feedback = append(profile.Feedback, feedbackSpecial)
	}

	profile.Strength = strengthLevel(profile.Score)
	return profile
}

func strengthLevel(score int) domain.StrengthLevel {
	switch {
	case score >= 8:
		return domain.StrengthVeryStrong
	case score >= 5:
		return domain.StrengthStrong
	case score >= 3:
		return domain.StrengthModerate
	default:
		return domain.StrengthWeak
	}
}

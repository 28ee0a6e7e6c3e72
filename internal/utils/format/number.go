package format

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Int formats n with thousands separators.
func Int(n int64) string {
	return printer.Sprintf("%d", n)
}

// Rate formats an attempts/second figure with two decimals.
func Rate(r float64) string {
	return printer.Sprintf("%.2f", r)
}

// Whole formats a float rounded to an integer, with separators.
func Whole(f float64) string {
	return printer.Sprintf("%.0f", f)
}

// BigInt groups the digits of an arbitrarily large integer.
func BigInt(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return groupDigits(n.String())
}

// BigFloat rounds f to the nearest integer and groups its digits.
func BigFloat(f *big.Float) string {
	if f == nil {
		return "0"
	}
	return groupDigits(f.Text('f', 0))
}

func groupDigits(in string) string {
	sign := ""
	if strings.HasPrefix(in, "-") {
		sign, in = "-", in[1:]
	}
	out := strings.Builder{}
	out.WriteString(sign)
	for i, digit := range in {
		if i > 0 && (len(in)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(digit)
	}
	return out.String()
}

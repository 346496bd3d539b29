package staff

import "strings"

// NormalizeCPF strips the usual "000.000.000-00" punctuation.
func NormalizeCPF(cpf string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
}

// ValidCPF reports whether cpf has 11 digits, is not a repeated digit, and
// carries both check digits.
func ValidCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	digits := make([]int, 11)
	allSame := true
	for i, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
		if digits[i] != digits[0] {
			allSame = false
		}
	}
	if allSame {
		return false
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

func checkDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

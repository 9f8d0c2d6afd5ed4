package utils

import "regexp"

var cedulaPattern = regexp.MustCompile(`^\d{10}$`)

// ValidateCedula checks an Ecuadorian cédula: ten digits, a valid province
// code, and a mod-10 check digit.
func ValidateCedula(cedula string) bool {
	if !cedulaPattern.MatchString(cedula) {
		return false
	}

	provinceCode := int(cedula[0]-'0')*10 + int(cedula[1]-'0')
	if !(provinceCode >= 1 && provinceCode <= 24) && provinceCode != 30 {
		return false
	}

	thirdDigit := int(cedula[2] - '0')
	if thirdDigit > 6 {
		return false
	}

	coefficients := []int{2, 1, 2, 1, 2, 1, 2, 1, 2}
	sum := 0
	for i := 0; i < 9; i++ {
		digit := int(cedula[i]-'0') * coefficients[i]
		if digit > 9 {
			digit -= 9
		}
		sum += digit
	}

	verifier := int(cedula[9] - '0')
	calculated := 10 - (sum % 10)
	if calculated == 10 {
		calculated = 0
	}
	return verifier == calculated
}

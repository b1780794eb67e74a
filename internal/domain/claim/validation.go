package claim

// CaseNumLength is the fixed length of external case numbers.
const CaseNumLength = 8

// ValidateCaseNum checks the fixed 8-character case number format.
func ValidateCaseNum(casenum string) error {
	if len(casenum) != CaseNumLength {
		return ErrInvalidCaseNum
	}
	return nil
}

// internal/document/extractor.go
package document

import (
	"regexp"
	"strconv"
	"strings"

	"loan-workers/internal/models"
)

// Label rules are matched line by line, so a capture never runs past its line.
var (
	reName           = regexp.MustCompile(`Name\s*:\s*([A-Za-z ]+)`)
	reAadhaarDOB     = regexp.MustCompile(`DOB\s*:\s*(\d{2}/\d{2}/\d{4})`)
	rePANDOB         = regexp.MustCompile(`Date of Birth\s*:\s*(\d{2}/\d{2}/\d{4})`)
	reGender         = regexp.MustCompile(`Gender\s*:\s*([MF])`)
	reFatherName     = regexp.MustCompile(`Father's Name\s*:\s*([A-Za-z ]+)`)
	reAddress        = regexp.MustCompile(`Address\s*:\s*(.+)`)
	reMonthlyIncome  = regexp.MustCompile(`Monthly Income\s*:\s*Rs\.\s*([\d,]+)`)
	reEmploymentType = regexp.MustCompile(`Employment Type\s*:\s*([A-Za-z ]+)`)
	reEmployer       = regexp.MustCompile(`Employer\s*:\s*([A-Za-z ]+)`)
	reIncomeDocType  = regexp.MustCompile(`Document Type\s*:\s*([A-Za-z ]+)`)
)

// Free-floating rules are matched against the whole text.
var (
	reAadhaarNumber = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	rePANNumber     = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
)

// Extract maps OCR text of a document to its structured fields. Every field of
// the document type is present in the result; a rule that finds nothing leaves
// its default ("" or 0.0). Types without extraction rules yield an empty map.
func Extract(docType models.DocumentType, ocrText string) models.ExtractedFields {
	text := Normalize(ocrText)

	switch docType {
	case models.DocumentTypeAadhaar:
		return extractAadhaar(text)
	case models.DocumentTypePAN:
		return extractPAN(text)
	case models.DocumentTypeIncomeProof:
		return extractIncomeProof(text)
	case models.DocumentTypeBankStatement, models.DocumentTypeOther:
		return models.ExtractedFields{}
	default:
		return models.ExtractedFields{}
	}
}

func extractAadhaar(text Text) models.ExtractedFields {
	fields := models.ExtractedFields{
		models.FieldName:          matchLine(text.Lines, reName),
		models.FieldDOB:           matchLine(text.Lines, reAadhaarDOB),
		models.FieldGender:        matchLine(text.Lines, reGender),
		models.FieldAadhaarNumber: "",
		models.FieldAddress:       matchLine(text.Lines, reAddress),
	}
	if m := reAadhaarNumber.FindString(text.Raw); m != "" {
		fields[models.FieldAadhaarNumber] = strings.Join(strings.Fields(m), "")
	}
	return fields
}

func extractPAN(text Text) models.ExtractedFields {
	return models.ExtractedFields{
		models.FieldName:       matchLine(text.Lines, reName),
		models.FieldFatherName: matchLine(text.Lines, reFatherName),
		models.FieldDOB:        matchLine(text.Lines, rePANDOB),
		models.FieldPANNumber:  rePANNumber.FindString(text.Raw),
		models.FieldAddress:    matchLine(text.Lines, reAddress),
	}
}

func extractIncomeProof(text Text) models.ExtractedFields {
	return models.ExtractedFields{
		models.FieldMonthlyIncome:  parseAmount(matchLine(text.Lines, reMonthlyIncome)),
		models.FieldEmploymentType: matchLine(text.Lines, reEmploymentType),
		models.FieldEmployerName:   matchLine(text.Lines, reEmployer),
		models.FieldDocumentType:   matchLine(text.Lines, reIncomeDocType),
	}
}

// matchLine returns the trimmed first capture group of the first line that
// matches re, or "".
func matchLine(lines []string, re *regexp.Regexp) string {
	for _, ln := range lines {
		if m := re.FindStringSubmatch(ln); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// parseAmount turns "50,000" into 50000. Anything unparsable is 0.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

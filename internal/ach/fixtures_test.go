package ach

import "strings"

// padRight left-aligns s in a field of width n.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

var (
	fileHeaderLine = "101 091000019 1234567892401011200A094101" +
		padRight("DEST BANK", 23) + padRight("ORIGIN CO", 23) + "REF00001"

	batchHeaderLine = "5200" + padRight("ACME CORP", 16) + padRight("", 20) + "1234567890" + "PPD" +
		padRight("PAYROLL", 10) + "240101" + "240102" + "   " + "1" + "09100001" + "0000001"

	entryLine = "622" + "09100001" + "9" + padRight("123456789", 17) + "0000010000" +
		padRight("EMP001", 15) + padRight("JOHN DOE", 22) + "  " + "1" + "091000010000001"

	regularAddendaLine = "705" + padRight("PAYMENT INFO", 80) + "0001" + "0000001"

	returnAddendaLine = "799" + "R01" + "091000010000001" + "      " + "09100001" +
		padRight("", 44) + "091000010000001"

	nocAddendaLine = "798" + "C01" + "091000010000001" + "      " + "09100001" +
		padRight("1234567890123", 29) + padRight("", 15) + "091000010000001"

	batchControlLine = "8200" + "000002" + "0009100001" + "000000000000" + "000000010000" +
		"1234567890" + padRight("", 19) + "      " + "09100001" + "0000001"

	fileControlLine = "9" + "000001" + "000001" + "00000002" + "0009100001" +
		"000000000000" + "000000010000" + padRight("", 39)
)

// entryWithTrace returns an entry detail line carrying the given 15-digit trace.
func entryWithTrace(trace string) string {
	return entryLine[:79] + trace
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

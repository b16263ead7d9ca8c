package invoice

var (
	wordUnits = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	wordTeens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	wordTens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords spells out a rounded invoice total using Indian grouping
// (Hundred/Thousand/Lakh/Crore), suffixed "Only". Zero is literal "Zero".
// Negative totals should not occur on an invoice; they are spelled out
// with a "Minus" prefix rather than left to fail.
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + convertWords(-n) + " Only"
	}
	return convertWords(n) + " Only"
}

func convertWords(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return wordUnits[n]
	case n < 20:
		return wordTeens[n-10]
	case n < 100:
		return join(wordTens[n/10], convertWords(n%10))
	case n < 1000:
		return join(wordUnits[n/100]+" Hundred", convertWords(n%100))
	case n < 100000:
		return join(convertWords(n/1000)+" Thousand", convertWords(n%1000))
	case n < 10000000:
		return join(convertWords(n/100000)+" Lakh", convertWords(n%100000))
	default:
		return join(convertWords(n/10000000)+" Crore", convertWords(n%10000000))
	}
}

func join(head, tail string) string {
	if tail == "" {
		return head
	}
	return head + " " + tail
}

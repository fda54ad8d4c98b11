package lexer

import "strings"

// functionNames holds the recognized formula functions, upper-cased.
var functionNames = map[string]struct{}{}

func init() {
	for _, group := range [][]string{
		// logical
		{"IF", "SWITCH", "IFS", "AND", "OR", "XOR", "NOT", "TRUE", "FALSE", "BLANK"},
		// numeric
		{
			"SUM", "AVERAGE", "MIN", "MAX", "COUNT", "COUNTA", "COUNTALL",
			"ROUND", "ROUNDUP", "ROUNDDOWN", "CEILING", "FLOOR", "INT", "ABS",
			"SQRT", "POWER", "EXP", "LOG", "LOG10", "MOD", "EVEN", "ODD", "VALUE",
		},
		// string
		{
			"CONCATENATE", "LEFT", "RIGHT", "MID", "LEN", "FIND", "SEARCH",
			"SUBSTITUTE", "REPLACE", "LOWER", "UPPER", "TRIM", "REPT", "T",
			"ENCODE_URL_COMPONENT", "REGEX_MATCH", "REGEX_EXTRACT", "REGEX_REPLACE",
		},
		// date and time
		{
			"TODAY", "NOW", "DATEADD", "DATETIME_DIFF", "DATETIME_FORMAT",
			"DATETIME_PARSE", "SET_LOCALE", "SET_TIMEZONE", "YEAR", "MONTH", "DAY",
			"HOUR", "MINUTE", "SECOND", "WEEKDAY", "WEEKNUM", "TIMESTR", "TONOW",
			"FROMNOW", "IS_SAME", "IS_BEFORE", "IS_AFTER", "WORKDAY", "WORKDAY_DIFF",
		},
		// array
		{"ARRAYJOIN", "ARRAYUNIQUE", "ARRAYCOMPACT", "ARRAYFLATTEN"},
		// record
		{"RECORD_ID", "CREATED_TIME", "LAST_MODIFIED_TIME", "ERROR", "ISERROR"},
	} {
		for _, name := range group {
			functionNames[name] = struct{}{}
		}
	}
}

// IsFunctionName reports whether name is a recognized function, ignoring case.
func IsFunctionName(name string) bool {
	_, ok := functionNames[strings.ToUpper(name)]
	return ok
}

// NumFunctions returns the number of recognized functions.
func NumFunctions() int {
	return len(functionNames)
}

package cli

var PrintIndexDiff = printIndexDiff

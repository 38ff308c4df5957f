package quiz

var SameLabels = sameLabels

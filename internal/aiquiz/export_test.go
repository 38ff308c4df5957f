package aiquiz

var Transition = transition

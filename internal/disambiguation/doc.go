// Package disambiguation asks an operator to settle ambiguous series matches.
//
// A Gate turns a set of candidate series into a numbered Menu and blocks on a
// single Decider choice. Deciders are swappable: the console decider reads a
// line from the terminal, the scripted decider replays recorded answers and
// the create-new decider always declines.
package disambiguation

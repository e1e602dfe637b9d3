// Package textkit provides the heuristic study tools: sentence splitting,
// extractive summaries and multiple-choice question generation.
//
// The tools are deliberately naive. They produce plausible-looking output
// for revision, not semantically correct summaries or questions.
package textkit

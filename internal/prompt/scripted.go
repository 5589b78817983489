// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import "sync"

var _ Prompter = (*Scripted)(nil)

// Scripted is a Prompter that replays fixed answers, for tests and non-interactive use.
// It returns ErrAborted once the answers run out.
type Scripted struct {
	mu        sync.Mutex
	answers   []string
	Questions []string // Every question asked, in order.
}

// NewScripted returns a Prompter answering with answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Prompt implements Prompter. An empty scripted answer accepts initial.
func (s *Scripted) Prompt(question, initial string) (string, error) {
	answer, err := s.next(question)
	if err != nil {
		return "", err
	}

	if answer == "" {
		return initial, nil
	}

	return answer, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(question string) (bool, error) {
	answer, err := s.next(question)
	if err != nil {
		return false, err
	}

	return IsYes(answer), nil
}

// Close implements Prompter.
func (s *Scripted) Close() error { return nil }

func (s *Scripted) next(question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, question)

	if len(s.answers) == 0 {
		return "", ErrAborted
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]

	return answer, nil
}

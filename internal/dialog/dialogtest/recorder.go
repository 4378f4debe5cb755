// Package dialogtest provides a scripted Reporter and Prompter for tests.
package dialogtest

import "errors"

// Report is one recorded modal.
type Report struct {
	Title   string
	Message string
}

// Recorder records reports and replays scripted answers.
type Recorder struct {
	Reports      []Report
	Acknowledged []string
	Questions    []string

	// Answers are returned by Choose and Ask in order.
	Answers []string
	// Err, when set, is returned by every prompt.
	Err error
}

func (r *Recorder) Report(title, message string) {
	r.Reports = append(r.Reports, Report{Title: title, Message: message})
}

func (r *Recorder) Choose(title string, _ []string) (string, error) {
	return r.answer(title)
}

func (r *Recorder) Ask(title string, _ []string) (string, error) {
	return r.answer(title)
}

func (r *Recorder) Acknowledge(message string) error {
	r.Acknowledged = append(r.Acknowledged, message)
	return r.Err
}

func (r *Recorder) answer(title string) (string, error) {
	r.Questions = append(r.Questions, title)
	if r.Err != nil {
		return "", r.Err
	}
	if len(r.Answers) == 0 {
		return "", errors.New("dialogtest: no scripted answer")
	}
	next := r.Answers[0]
	r.Answers = r.Answers[1:]
	return next, nil
}

// Titles returns the titles of the recorded reports.
func (r *Recorder) Titles() []string {
	out := make([]string, 0, len(r.Reports))
	for _, rep := range r.Reports {
		out = append(out, rep.Title)
	}
	return out
}

// Package entry holds the canonical timeline entry and the normalizer that
// reshapes backend records into it.
package entry

import "fmt"

// Entry is one saved journal record as shown in the timeline.
type Entry struct {
	ID     string `json:"id" yaml:"id"`
	Text   string `json:"text" yaml:"text"`
	Date   string `json:"date" yaml:"date"`
	Domain string `json:"domain" yaml:"domain"`
}

func (e *Entry) Title() string {
	return e.Domain
}

func (e *Entry) Row() (string, string, string) {
	return DisplayDate(e.Date), e.Domain, e.Text
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", DisplayDate(e.Date), e.Text)
}

// Latest returns at most n entries from the head of the list. The backend
// returns newest first. n <= 0 keeps everything.
func Latest(all []Entry, n int) []Entry {
	if n <= 0 || len(all) <= n {
		return all
	}
	return all[:n]
}

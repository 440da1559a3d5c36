package contact

import (
	"errors"
	"strconv"
	"strings"
)

// Submission is one enquiry from a site form.
type Submission struct {
	Name       string `json:"name" form:"name"`
	Place      string `json:"place" form:"place"`
	Age        string `json:"age" form:"age"`
	Phone      string `json:"phone" form:"phone"`
	Message    string `json:"message" form:"message"`
	PageSource string `json:"page_source" form:"pageSource"`
}

const (
	minAge = 18
	maxAge = 100
)

// Normalize trims every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:       strings.TrimSpace(s.Name),
		Place:      strings.TrimSpace(s.Place),
		Age:        strings.TrimSpace(s.Age),
		Phone:      strings.TrimSpace(s.Phone),
		Message:    strings.TrimSpace(s.Message),
		PageSource: strings.TrimSpace(s.PageSource),
	}
}

// Validate checks the required fields of a normalized submission.
func (s Submission) Validate() error {
	if s.Name == "" || s.Place == "" || s.Age == "" || s.Phone == "" {
		return errors.New("please fill in all required fields")
	}
	age, err := strconv.ParseFloat(s.Age, 64)
	if err != nil || age < minAge || age > maxAge {
		return errors.New("please enter a valid age between 18 and 100")
	}
	return nil
}

// PageSourceFromPath names the page a form was sent from.
func PageSourceFromPath(path string) string {
	switch {
	case strings.Contains(path, "index.html") || path == "/":
		return "Home Page"
	case strings.Contains(path, "mutual.html"):
		return "Mutual Funds Page"
	case strings.Contains(path, "iap.html"):
		return "IAP Page"
	case strings.Contains(path, "pms.html"):
		return "PMS Page"
	case strings.Contains(path, "start.html"):
		return "Start Investment Page"
	default:
		return "Unknown"
	}
}

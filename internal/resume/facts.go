package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Facts are the candidate attributes the rule engine consumes.
type Facts struct {
	Skills          []string
	ExperienceYears float64
	IsStudent       bool
	GitHubURL       string
	Publications    []string
}

var (
	endpoint   = `(?:[a-z]{3,9}\.?\s+)?\d{4}|\d{1,2}/\d{4}`
	rangeRe    = regexp.MustCompile(`(?i)(` + endpoint + `)\s*(?:-|–|—|to|until)\s*(` + endpoint + `|present|current|now|today|ongoing)`)
	spanRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(years?|yrs?|months?|mos?)\b`)
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthYear  = regexp.MustCompile(`(?i)^([a-z]{3,9})\.?\s+(\d{4})$`)
	slashDate  = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	enrolledRe = regexp.MustCompile(`(?i)\b(expected|pursuing|candidate|in progress|ongoing|present|current)\b`)
	selfRe     = regexp.MustCompile(`(?i)\b(?:i am|i'm|currently)\s+((?:[a-z'-]+\s+){0,4}?)(?:student|undergraduate|studying|enrolled|pursuing)\b`)
	githubRe   = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[A-Za-z0-9_-]+`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// githubReserved are first path segments that never denote a user profile.
var githubReserved = map[string]bool{
	"topics": true, "explore": true, "trending": true, "search": true,
	"settings": true, "notifications": true, "features": true, "about": true,
	"orgs": true, "sponsors": true, "marketplace": true, "apps": true,
	"login": true, "enterprise": true, "collections": true, "pricing": true,
}

// notSelf are words that, between "I am" and "student", show the sentence is about other people.
var notSelf = map[string]bool{
	"who": true, "that": true, "which": true, "with": true, "and": true, "for": true, "to": true,
	"mentor": true, "mentoring": true, "mentored": true, "managing": true, "managed": true,
	"leading": true, "led": true, "teaching": true, "taught": true, "supervising": true,
	"supervised": true, "hiring": true, "hired": true, "coaching": true, "coached": true,
	"running": true, "ran": true, "onboarding": true, "onboarded": true,
}

var studentTitles = map[string]bool{"intern": true, "student": true, "trainee": true}

// DeriveFacts computes the rule-engine view of the resume relative to now.
func DeriveFacts(p *Parsed, now time.Time) Facts {
	if p == nil {
		return Facts{}
	}

	facts := Facts{
		Skills:          p.UniqueSkills(),
		ExperienceYears: ExperienceYears(p.Experience, now),
		IsStudent:       IsStudent(p, now),
		GitHubURL:       strings.TrimSpace(p.GitHubURL),
		Publications:    nonEmpty(p.Publications),
	}

	if facts.GitHubURL == "" {
		facts.GitHubURL = FindGitHubURL(p.Text())
	}

	return facts
}

// ExperienceYears sums the durations of all entries. Overlapping ranges are counted twice.
func ExperienceYears(entries []Experience, now time.Time) float64 {
	var total float64
	for _, entry := range entries {
		total += DurationYears(entry.Duration, now)
	}
	return total
}

// DurationYears parses labels such as "2016 - 2020", "Jan 2020 – Present" or "3 years".
// Several ranges in one label are summed. A range within a single bare year, such as
// "2019 - 2019", counts as half a year. Unparseable labels count as zero.
func DurationYears(label string, now time.Time) float64 {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}

	if ranges := rangeRe.FindAllStringSubmatch(label, -1); ranges != nil {
		var total float64
		for _, m := range ranges {
			total += rangeYears(m[1], m[2], now)
		}
		return total
	}

	if m := spanRe.FindStringSubmatch(label); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		if strings.HasPrefix(strings.ToLower(m[2]), "m") {
			return n / 12
		}
		return n
	}

	return 0
}

const sameYearSpan = 0.5

func rangeYears(from, to string, now time.Time) float64 {
	start, ok := parsePoint(from, now)
	if !ok {
		return 0
	}
	end, ok := parsePoint(to, now)
	if !ok || end < start {
		return 0
	}
	if end == start && bareYear(from) && bareYear(to) {
		return sameYearSpan
	}
	return end - start
}

func bareYear(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// parsePoint converts a date label into fractional years.
func parsePoint(s string, now time.Time) (float64, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "present", "current", "now", "today", "ongoing":
		return float64(now.Year()) + float64(now.Month()-1)/12, true
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			month = 1
		}
		return float64(year) + float64(month-1)/12, true
	}

	if m := monthYear.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[2])
		key := strings.ToLower(m[1])
		if len(key) > 3 {
			key = key[:3]
		}
		month, ok := months[key]
		if !ok {
			month = 1
		}
		return float64(year) + float64(month-1)/12, true
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return float64(year), true
}

// IsStudent reports whether the candidate is still studying. Education decides first:
// a graduation year after now, or wording such as "expected" or "pursuing". Otherwise
// the summary must describe the candidate as a student ("I am a CS student") or the
// latest title must be an internship.
func IsStudent(p *Parsed, now time.Time) bool {
	if p == nil {
		return false
	}

	for _, edu := range p.Education {
		for _, match := range yearRe.FindAllString(edu.Year, -1) {
			if year, err := strconv.Atoi(match); err == nil && year > now.Year() {
				return true
			}
		}
		if enrolledRe.MatchString(edu.Degree + " " + edu.Year) {
			return true
		}
	}

	if describesSelfAsStudent(p.Summary) {
		return true
	}

	return len(p.Experience) > 0 && isStudentTitle(p.Experience[0].Title)
}

func describesSelfAsStudent(summary string) bool {
	for _, m := range selfRe.FindAllStringSubmatch(summary, -1) {
		self := true
		for _, word := range strings.Fields(strings.ToLower(m[1])) {
			if notSelf[word] {
				self = false
				break
			}
		}
		if self {
			return true
		}
	}
	return false
}

func isStudentTitle(title string) bool {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return false
	}
	return studentTitles[words[len(words)-1]] || words[0] == "intern" || words[0] == "internship"
}

// FindGitHubURL returns the first GitHub profile URL mentioned in text.
func FindGitHubURL(text string) string {
	for _, match := range githubRe.FindAllString(text, -1) {
		idx := strings.LastIndex(match, "/")
		if githubReserved[strings.ToLower(match[idx+1:])] {
			continue
		}
		return match
	}
	return ""
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
